// Package byteview provides bounds-checked random access to a fixed-length
// byte buffer.
//
// A View never grows or shrinks its buffer. Every accessor validates the
// requested range before touching memory, so a failed write leaves the buffer
// unchanged.
package byteview

import (
	"encoding/binary"
)

// View reads and writes typed values at explicit offsets of a byte buffer.
// The zero value is an empty view.
type View struct {
	buf    []byte
	order  binary.ByteOrder
	mirror int
}

// Option configures a View.
type Option func(*View)

// WithOrder sets the byte order for multi-byte accessors. Little-endian is
// the default.
func WithOrder(order binary.ByteOrder) Option {
	return func(v *View) {
		if order != nil {
			v.order = order
		}
	}
}

// WithMirror repeats every successful write at off+period whenever that range
// also lies inside the buffer. A period <= 0 disables mirroring.
func WithMirror(period int) Option {
	return func(v *View) {
		if period > 0 {
			v.mirror = period
		}
	}
}

// New wraps buf without copying it.
func New(buf []byte, opts ...Option) *View {
	v := &View{buf: buf, order: binary.LittleEndian}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Len returns the buffer length.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.buf)
}

// Raw returns the underlying buffer. Writes through the returned slice bypass
// bounds checks and mirroring.
func (v *View) Raw() []byte {
	if v == nil {
		return nil
	}
	return v.buf
}

// Mirror returns the configured mirror period, or 0.
func (v *View) Mirror() int {
	if v == nil {
		return 0
	}
	return v.mirror
}

func (v *View) check(op string, off, size int) error {
	if off < 0 || size < 0 || off > v.Len()-size {
		return &BoundsError{Op: op, Offset: off, Size: size, Len: v.Len()}
	}
	return nil
}

// span returns buf[off:off+size] after a bounds check.
func (v *View) span(op string, off, size int) ([]byte, error) {
	if err := v.check(op, off, size); err != nil {
		return nil, err
	}
	return v.buf[off : off+size], nil
}

// write runs fn against the checked range and its mirror.
func (v *View) write(op string, off, size int, fn func(dst []byte)) error {
	dst, err := v.span(op, off, size)
	if err != nil {
		return err
	}
	fn(dst)
	if v.mirror > 0 {
		if m := off + v.mirror; m >= 0 && m <= len(v.buf)-size {
			fn(v.buf[m : m+size])
		}
	}
	return nil
}

func (v *View) U8(off int) (uint8, error) {
	b, err := v.span("read u8", off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (v *View) I8(off int) (int8, error) {
	u, err := v.U8(off)
	return int8(u), err
}

func (v *View) U16(off int) (uint16, error) {
	b, err := v.span("read u16", off, 2)
	if err != nil {
		return 0, err
	}
	return v.order.Uint16(b), nil
}

func (v *View) I16(off int) (int16, error) {
	u, err := v.U16(off)
	return int16(u), err
}

func (v *View) U32(off int) (uint32, error) {
	b, err := v.span("read u32", off, 4)
	if err != nil {
		return 0, err
	}
	return v.order.Uint32(b), nil
}

func (v *View) I32(off int) (int32, error) {
	u, err := v.U32(off)
	return int32(u), err
}

func (v *View) PutU8(off int, x uint8) error {
	return v.write("write u8", off, 1, func(dst []byte) { dst[0] = x })
}

func (v *View) PutI8(off int, x int8) error {
	return v.PutU8(off, uint8(x))
}

func (v *View) PutU16(off int, x uint16) error {
	return v.write("write u16", off, 2, func(dst []byte) { v.order.PutUint16(dst, x) })
}

func (v *View) PutI16(off int, x int16) error {
	return v.PutU16(off, uint16(x))
}

func (v *View) PutU32(off int, x uint32) error {
	return v.write("write u32", off, 4, func(dst []byte) { v.order.PutUint32(dst, x) })
}

func (v *View) PutI32(off int, x int32) error {
	return v.PutU32(off, uint32(x))
}

// Bytes returns a copy of n bytes starting at off.
func (v *View) Bytes(off, n int) ([]byte, error) {
	b, err := v.span("read bytes", off, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Slice returns n bytes starting at off without copying. The caller must not
// write through it if the view is mirrored.
func (v *View) Slice(off, n int) ([]byte, error) {
	return v.span("slice", off, n)
}

// PutBytes copies p into the buffer at off.
func (v *View) PutBytes(off int, p []byte) error {
	return v.write("write bytes", off, len(p), func(dst []byte) { copy(dst, p) })
}

// Fill sets n bytes starting at off to x.
func (v *View) Fill(off, n int, x byte) error {
	return v.write("fill", off, n, func(dst []byte) {
		for i := range dst {
			dst[i] = x
		}
	})
}

// FixedString reads an ASCII string of at most max bytes, stopping at the
// first zero byte.
func (v *View) FixedString(off, max int) (string, error) {
	b, err := v.span("read string", off, max)
	if err != nil {
		return "", err
	}
	for i, c := range b {
		if c == 0 {
			return string(b[:i]), nil
		}
	}
	return string(b), nil
}

// PutFixedString writes s into a max-byte field, truncating long strings and
// zero-padding short ones.
func (v *View) PutFixedString(off, max int, s string) error {
	return v.write("write string", off, max, func(dst []byte) {
		n := copy(dst, s)
		for i := n; i < len(dst); i++ {
			dst[i] = 0
		}
	})
}
