package byteview

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestTypedAccessorsLittleEndian(t *testing.T) {
	t.Parallel()

	v := New(make([]byte, 16))
	if err := v.PutU16(0, 0x1122); err != nil {
		t.Fatalf("put u16: %v", err)
	}
	if err := v.PutU32(2, 0x33445566); err != nil {
		t.Fatalf("put u32: %v", err)
	}
	if err := v.PutI8(6, -2); err != nil {
		t.Fatalf("put i8: %v", err)
	}
	if err := v.PutI16(7, -300); err != nil {
		t.Fatalf("put i16: %v", err)
	}
	if err := v.PutI32(9, -70000); err != nil {
		t.Fatalf("put i32: %v", err)
	}

	raw := v.Raw()
	if raw[0] != 0x22 || raw[1] != 0x11 {
		t.Fatalf("u16 is not little-endian: %x", raw[0:2])
	}
	if raw[2] != 0x66 || raw[5] != 0x33 {
		t.Fatalf("u32 is not little-endian: %x", raw[2:6])
	}

	if got, _ := v.U16(0); got != 0x1122 {
		t.Fatalf("u16: got 0x%X want 0x1122", got)
	}
	if got, _ := v.U32(2); got != 0x33445566 {
		t.Fatalf("u32: got 0x%X want 0x33445566", got)
	}
	if got, _ := v.I8(6); got != -2 {
		t.Fatalf("i8: got %d want -2", got)
	}
	if got, _ := v.U8(6); got != 0xFE {
		t.Fatalf("u8: got 0x%X want 0xFE", got)
	}
	if got, _ := v.I16(7); got != -300 {
		t.Fatalf("i16: got %d want -300", got)
	}
	if got, _ := v.I32(9); got != -70000 {
		t.Fatalf("i32: got %d want -70000", got)
	}
}

func TestBigEndianOption(t *testing.T) {
	t.Parallel()

	v := New(make([]byte, 4), WithOrder(binary.BigEndian))
	if err := v.PutU32(0, 0x01020304); err != nil {
		t.Fatalf("put u32: %v", err)
	}
	if !bytes.Equal(v.Raw(), []byte{1, 2, 3, 4}) {
		t.Fatalf("big-endian layout mismatch: %x", v.Raw())
	}
}

func TestOutOfBounds(t *testing.T) {
	t.Parallel()

	v := New(make([]byte, 8))
	cases := []struct {
		name string
		fn   func() error
	}{
		{"u8 at len", func() error { _, err := v.U8(8); return err }},
		{"u8 negative", func() error { _, err := v.U8(-1); return err }},
		{"u16 straddles end", func() error { _, err := v.U16(7); return err }},
		{"u32 straddles end", func() error { _, err := v.U32(5); return err }},
		{"put u32 straddles end", func() error { return v.PutU32(6, 1) }},
		{"bytes too long", func() error { _, err := v.Bytes(4, 5); return err }},
		{"put bytes too long", func() error { return v.PutBytes(7, []byte{1, 2}) }},
		{"string too long", func() error { _, err := v.FixedString(2, 7); return err }},
		{"fill negative length", func() error { return v.Fill(0, -1, 0) }},
	}
	for _, tc := range cases {
		err := tc.fn()
		if !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("%s: got %v want ErrOutOfBounds", tc.name, err)
		}
		var be *BoundsError
		if !errors.As(err, &be) {
			t.Fatalf("%s: expected *BoundsError, got %T", tc.name, err)
		}
	}
	if !bytes.Equal(v.Raw(), make([]byte, 8)) {
		t.Fatalf("failed writes modified the buffer: %x", v.Raw())
	}
}

func TestFixedString(t *testing.T) {
	t.Parallel()

	v := New(make([]byte, 12))
	if err := v.PutFixedString(0, 8, "HI"); err != nil {
		t.Fatalf("put string: %v", err)
	}
	got, err := v.FixedString(0, 8)
	if err != nil {
		t.Fatalf("read string: %v", err)
	}
	if got != "HI" {
		t.Fatalf("string: got %q want %q", got, "HI")
	}

	if err := v.PutFixedString(0, 4, "TOOLONG"); err != nil {
		t.Fatalf("put long string: %v", err)
	}
	got, _ = v.FixedString(0, 4)
	if got != "TOOL" {
		t.Fatalf("truncated string: got %q want %q", got, "TOOL")
	}
}

func TestBytesReturnsCopy(t *testing.T) {
	t.Parallel()

	v := New([]byte{1, 2, 3, 4})
	b, err := v.Bytes(1, 2)
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	b[0] = 9
	if v.Raw()[1] != 2 {
		t.Fatalf("Bytes aliased the buffer")
	}
}

func TestMirroredWrites(t *testing.T) {
	t.Parallel()

	v := New(make([]byte, 8), WithMirror(4))
	if v.Mirror() != 4 {
		t.Fatalf("mirror period: got %d want 4", v.Mirror())
	}
	if err := v.PutU16(1, 0xBEEF); err != nil {
		t.Fatalf("put u16: %v", err)
	}
	want := []byte{0, 0xEF, 0xBE, 0, 0, 0xEF, 0xBE, 0}
	if !bytes.Equal(v.Raw(), want) {
		t.Fatalf("mirror: got %x want %x", v.Raw(), want)
	}

	// Writes whose mirror falls outside the buffer still land once.
	if err := v.PutU8(6, 0x11); err != nil {
		t.Fatalf("put u8: %v", err)
	}
	if v.Raw()[6] != 0x11 {
		t.Fatalf("primary write missing")
	}

	if err := v.Fill(0, 2, 0xAA); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if v.Raw()[4] != 0xAA || v.Raw()[5] != 0xAA {
		t.Fatalf("fill was not mirrored: %x", v.Raw())
	}
}
