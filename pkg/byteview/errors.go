package byteview

import (
	"errors"
	"fmt"
)

var ErrOutOfBounds = errors.New("byteview: access out of bounds")

// BoundsError describes a rejected access.
type BoundsError struct {
	Op     string
	Offset int
	Size   int
	Len    int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("byteview: %s at 0x%X size %d exceeds buffer of %d bytes", e.Op, e.Offset, e.Size, e.Len)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
