package sav

import (
	"errors"
	"testing"
)

func TestDetectLayout(t *testing.T) {
	t.Parallel()

	full, _ := Format(VariantFull)
	mirrored, _ := Format(VariantMirrored)
	half, _ := Format(VariantHalf)

	cases := []struct {
		name    string
		buf     []byte
		variant Variant
		blocks  int
	}{
		{"full", full, VariantFull, 0xBF},
		{"mirrored", mirrored, VariantMirrored, 0x3F},
		{"half", half, VariantHalf, 0x3F},
	}
	for _, tc := range cases {
		l, err := DetectLayout(tc.buf)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if l.Variant != tc.variant || l.Blocks != tc.blocks || l.Size != len(tc.buf) {
			t.Fatalf("%s: got %+v", tc.name, l)
		}
	}

	for _, n := range []int{0, 0x8000, SizeHalf + 1, SizeFull * 2} {
		if _, err := DetectLayout(make([]byte, n)); !errors.Is(err, ErrInvalidContainerSize) {
			t.Fatalf("size %d: got %v want ErrInvalidContainerSize", n, err)
		}
	}
}

func TestTotalBlocks(t *testing.T) {
	t.Parallel()

	if TotalBlocks(false) != 0xBF {
		t.Fatalf("full: got %d", TotalBlocks(false))
	}
	if TotalBlocks(true) != 0x3F {
		t.Fatalf("64kb: got %d", TotalBlocks(true))
	}
	// Both layouts end exactly at the end of their image.
	if blockOffset(FullBlocks) != SizeFull || blockOffset(HalfBlocks) != SizeHalf {
		t.Fatalf("block storage does not fill the image")
	}
}

func TestIs64KB(t *testing.T) {
	t.Parallel()

	if Is64KB(make([]byte, 0x8000)) {
		t.Fatalf("0x8000 buffer detected as 64kb")
	}
	if Is64KB(make([]byte, SizeHalf)) {
		t.Fatalf("half-size buffer detected as mirrored")
	}

	mirrored, _ := Format(VariantMirrored)
	if !Is64KB(mirrored) || !MirrorsExactly(mirrored) {
		t.Fatalf("mirrored image not detected")
	}

	half := SizeFull / 2
	windows := []int{0, half/2 + sampleWindow, half - sampleWindow}
	for _, off := range windows {
		buf := make([]byte, SizeFull)
		copy(buf, mirrored)
		buf[half+off+sampleWindow-1] ^= 0xFF
		if Is64KB(buf) {
			t.Fatalf("difference in window 0x%X not detected", off)
		}
	}

	// A difference outside the sampled windows passes the heuristic but
	// fails the exhaustive check.
	buf := make([]byte, SizeFull)
	copy(buf, mirrored)
	buf[half+0x4000] ^= 0xFF
	if !Is64KB(buf) {
		t.Fatalf("unsampled difference should pass the heuristic")
	}
	if MirrorsExactly(buf) {
		t.Fatalf("exhaustive check missed a difference")
	}

	full, _ := Format(VariantFull)
	if Is64KB(full) {
		t.Fatalf("formatted full image detected as mirrored")
	}
}
