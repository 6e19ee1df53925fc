package sav

import (
	"fmt"

	"github.com/samcharles93/gbsav/pkg/byteview"
)

// Format returns a blank, initialized container of the given variant: every
// block free, no names, no active song.
func Format(variant Variant) ([]byte, error) {
	var layout Layout
	switch variant {
	case VariantFull:
		layout = Layout{Size: SizeFull, Variant: VariantFull, Blocks: FullBlocks}
	case VariantMirrored:
		layout = Layout{Size: SizeFull, Variant: VariantMirrored, Blocks: HalfBlocks}
	case VariantHalf:
		layout = Layout{Size: SizeHalf, Variant: VariantHalf, Blocks: HalfBlocks}
	default:
		return nil, fmt.Errorf("%w: unknown variant %d", ErrInvalidContainerSize, int(variant))
	}

	buf := make([]byte, layout.Size)
	v := byteview.New(buf, byteview.WithMirror(layout.mirrorPeriod()))
	steps := []func() error{
		func() error { return v.Fill(NameTableOffset, SongCount*NameLen, 0) },
		func() error { return v.Fill(VersionTableOffset, SongCount, 0) },
		func() error { return v.PutFixedString(InitMarkOffset, len(InitMark), InitMark) },
		func() error { return v.PutU8(ActiveSlotOffset, NoSong) },
		func() error { return v.Fill(AllocTableOffset, layout.Blocks, EmptyEntry) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return buf, nil
}
