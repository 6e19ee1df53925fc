package sav

import (
	"bytes"
	"fmt"
)

// sampleWindow is the size of each window compared by Is64KB.
const sampleWindow = 0x100

// Variant names the physical shape of a container.
type Variant int

const (
	// VariantFull is a 128 KB image using every block.
	VariantFull Variant = iota
	// VariantMirrored is a 128 KB image whose halves mirror a 64 KB chip.
	VariantMirrored
	// VariantHalf is a bare 64 KB image.
	VariantHalf
)

func (v Variant) String() string {
	switch v {
	case VariantFull:
		return "128kb"
	case VariantMirrored:
		return "64kb-mirrored"
	case VariantHalf:
		return "64kb"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Layout describes how a buffer is addressed.
type Layout struct {
	Size    int
	Variant Variant
	Blocks  int
}

// Is64KB reports whether the layout is limited to 64 KB of blocks.
func (l Layout) Is64KB() bool {
	return l.Variant != VariantFull
}

// mirrorPeriod is the offset at which writes are repeated, or 0.
func (l Layout) mirrorPeriod() int {
	if l.Variant == VariantMirrored {
		return l.Size / 2
	}
	return 0
}

// TotalBlocks returns the number of allocatable blocks.
func TotalBlocks(is64kb bool) int {
	if is64kb {
		return HalfBlocks
	}
	return FullBlocks
}

// ValidSize reports whether n is a legal container length.
func ValidSize(n int) bool {
	return n == SizeHalf || n == SizeFull
}

// DetectLayout classifies buf. Full images are checked for mirroring with
// the sampling heuristic.
func DetectLayout(buf []byte) (Layout, error) {
	switch len(buf) {
	case SizeHalf:
		return Layout{Size: SizeHalf, Variant: VariantHalf, Blocks: TotalBlocks(true)}, nil
	case SizeFull:
		if Is64KB(buf) {
			return Layout{Size: SizeFull, Variant: VariantMirrored, Blocks: TotalBlocks(true)}, nil
		}
		return Layout{Size: SizeFull, Variant: VariantFull, Blocks: TotalBlocks(false)}, nil
	default:
		return Layout{}, fmt.Errorf("%w: %d bytes", ErrInvalidContainerSize, len(buf))
	}
}

// Is64KB samples three windows (start, middle, end) of each half of a full
// image and reports whether all three match. It is false for every buffer
// that is not exactly SizeFull.
func Is64KB(buf []byte) bool {
	if len(buf) != SizeFull {
		return false
	}
	half := len(buf) / 2
	// The middle window starts at the directory tail of a mirrored image:
	// versions, init marker, active slot and the start of the allocation table.
	for _, off := range []int{0, half/2 + sampleWindow, half - sampleWindow} {
		if !bytes.Equal(buf[off:off+sampleWindow], buf[half+off:half+off+sampleWindow]) {
			return false
		}
	}
	return true
}

// MirrorsExactly compares the two halves of a full image byte for byte.
func MirrorsExactly(buf []byte) bool {
	if len(buf) != SizeFull {
		return false
	}
	half := len(buf) / 2
	return bytes.Equal(buf[:half], buf[half:])
}
