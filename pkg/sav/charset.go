package sav

// The tracker font places A-Z and 0-9 at the same codes as ASCII, and has no
// glyphs the file browser can show for anything else.
const spaceCode = 0x20

func encodeNameChar(c byte) byte {
	switch {
	case c >= 'A' && c <= 'Z':
		return 0x41 + (c - 'A')
	case c >= '0' && c <= '9':
		return 0x30 + (c - '0')
	default:
		return spaceCode
	}
}

func decodeNameChar(code byte) byte {
	switch {
	case code >= 0x41 && code <= 0x5A:
		return 'A' + (code - 0x41)
	case code >= 0x30 && code <= 0x39:
		return '0' + (code - 0x30)
	default:
		return ' '
	}
}

// EncodeName converts an ASCII name into its NameLen-byte stored form. Short
// names are padded with the zero terminator.
func EncodeName(name string) [NameLen]byte {
	var out [NameLen]byte
	for i := 0; i < NameLen && i < len(name); i++ {
		out[i] = encodeNameChar(name[i])
	}
	return out
}

// DecodeName converts a stored name to ASCII. Every position decodes to a
// character, so the result is always NameLen bytes long.
func DecodeName(raw []byte) string {
	out := make([]byte, NameLen)
	for i := range out {
		if i < len(raw) {
			out[i] = decodeNameChar(raw[i])
		} else {
			out[i] = ' '
		}
	}
	return string(out)
}
