package sav

import (
	"errors"
	"testing"
)

func TestAllocTableOperations(t *testing.T) {
	t.Parallel()

	c := newContainer(t, VariantFull)
	a := c.Alloc()

	if a.Total() != FullBlocks {
		t.Fatalf("total: got %d want %d", a.Total(), FullBlocks)
	}
	free, err := a.FreeCount()
	if err != nil {
		t.Fatalf("free count: %v", err)
	}
	if free != FullBlocks {
		t.Fatalf("free: got %d want %d", free, FullBlocks)
	}

	for _, b := range []int{0, 1, 4} {
		if err := a.Allocate(b, 5); err != nil {
			t.Fatalf("allocate %d: %v", b, err)
		}
	}
	if err := a.Allocate(2, 6); err != nil {
		t.Fatalf("allocate 2: %v", err)
	}

	first, ok, err := a.FirstFree()
	if err != nil || !ok {
		t.Fatalf("first free: %d %v %v", first, ok, err)
	}
	if first != 3 {
		t.Fatalf("first free: got %d want 3", first)
	}
	used, _ := a.UsedBy(5)
	if used != 3 {
		t.Fatalf("used by 5: got %d want 3", used)
	}
	blocks, _ := a.BlocksOf(5)
	if len(blocks) != 3 || blocks[0] != 0 || blocks[1] != 1 || blocks[2] != 4 {
		t.Fatalf("blocks of 5: got %v", blocks)
	}
	checkAllocInvariant(t, c)

	if err := a.Free(1); err != nil {
		t.Fatalf("free 1: %v", err)
	}
	first, _, _ = a.FirstFree()
	if first != 1 {
		t.Fatalf("first free after free: got %d want 1", first)
	}
	owner, _ := a.Owner(1)
	if owner != EmptyEntry {
		t.Fatalf("owner after free: got 0x%02X", owner)
	}
	checkAllocInvariant(t, c)
}

func TestAllocTableRanges(t *testing.T) {
	t.Parallel()

	c := newContainer(t, VariantHalf)
	a := c.Alloc()

	if err := a.Allocate(HalfBlocks, 0); !errors.Is(err, ErrBlockRange) {
		t.Fatalf("allocate past total: got %v", err)
	}
	if err := a.Free(-1); !errors.Is(err, ErrBlockRange) {
		t.Fatalf("free negative: got %v", err)
	}
	if err := a.Allocate(0, SongCount); !errors.Is(err, ErrSongRange) {
		t.Fatalf("allocate to bad song: got %v", err)
	}
	if _, err := a.UsedBy(-1); !errors.Is(err, ErrSongRange) {
		t.Fatalf("used by bad song: got %v", err)
	}
}

func TestAllocTableFull(t *testing.T) {
	t.Parallel()

	c := newContainer(t, VariantHalf)
	a := c.Alloc()
	for b := 0; b < a.Total(); b++ {
		if err := a.Allocate(b, b%SongCount); err != nil {
			t.Fatalf("allocate %d: %v", b, err)
		}
	}
	if _, ok, err := a.FirstFree(); err != nil || ok {
		t.Fatalf("first free on a full table: ok=%v err=%v", ok, err)
	}
	checkAllocInvariant(t, c)
}

func TestUsageCountsStrayEntries(t *testing.T) {
	t.Parallel()

	c := newContainer(t, VariantHalf)
	c.Bytes()[AllocTableOffset+2] = 0x40
	if err := c.Alloc().Allocate(0, 1); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	u, err := c.Alloc().Usage()
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if u.Used != 1 || u.Stray != 1 || u.Free != HalfBlocks-2 {
		t.Fatalf("usage: got %+v", u)
	}
	if u.Used+u.Free+u.Stray != u.Total {
		t.Fatalf("usage does not add up: %+v", u)
	}
}
