package sav

import (
	"fmt"

	"github.com/samcharles93/gbsav/pkg/byteview"
)

// AllocTable maps block indices to owning songs. Entries are read straight
// from the view on every call.
type AllocTable struct {
	v     *byteview.View
	total int
}

// Usage summarises the allocation table.
type Usage struct {
	Total int `json:"total"`
	Used  int `json:"used"`
	Free  int `json:"free"`
	// Stray counts entries that name neither a song nor the free sentinel.
	Stray int `json:"stray"`
}

func newAllocTable(v *byteview.View, total int) AllocTable {
	return AllocTable{v: v, total: total}
}

// Total returns the number of allocatable blocks.
func (t AllocTable) Total() int {
	return t.total
}

func (t AllocTable) checkBlock(block int) error {
	if block < 0 || block >= t.total {
		return fmt.Errorf("%w: %d (total %d)", ErrBlockRange, block, t.total)
	}
	return nil
}

// Owner returns the raw table entry for block.
func (t AllocTable) Owner(block int) (byte, error) {
	if err := t.checkBlock(block); err != nil {
		return 0, err
	}
	return t.v.U8(AllocTableOffset + block)
}

func (t AllocTable) entries() ([]byte, error) {
	return t.v.Slice(AllocTableOffset, t.total)
}

// FreeCount counts free entries.
func (t AllocTable) FreeCount() (int, error) {
	e, err := t.entries()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, owner := range e {
		if owner == EmptyEntry {
			n++
		}
	}
	return n, nil
}

// UsedBy counts the blocks owned by song.
func (t AllocTable) UsedBy(song int) (int, error) {
	if err := checkSong(song); err != nil {
		return 0, err
	}
	e, err := t.entries()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, owner := range e {
		if int(owner) == song {
			n++
		}
	}
	return n, nil
}

// BlocksOf lists the blocks owned by song in ascending index order.
func (t AllocTable) BlocksOf(song int) ([]int, error) {
	if err := checkSong(song); err != nil {
		return nil, err
	}
	e, err := t.entries()
	if err != nil {
		return nil, err
	}
	var out []int
	for i, owner := range e {
		if int(owner) == song {
			out = append(out, i)
		}
	}
	return out, nil
}

// FirstFree returns the lowest free block.
func (t AllocTable) FirstFree() (int, bool, error) {
	e, err := t.entries()
	if err != nil {
		return 0, false, err
	}
	for i, owner := range e {
		if owner == EmptyEntry {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// Allocate assigns block to song. It does not check whether the block was free.
func (t AllocTable) Allocate(block, song int) error {
	if err := t.checkBlock(block); err != nil {
		return err
	}
	if err := checkSong(song); err != nil {
		return err
	}
	return t.v.PutU8(AllocTableOffset+block, byte(song))
}

// Free marks block as unowned.
func (t AllocTable) Free(block int) error {
	if err := t.checkBlock(block); err != nil {
		return err
	}
	return t.v.PutU8(AllocTableOffset+block, EmptyEntry)
}

// Usage walks the table once and totals it.
func (t AllocTable) Usage() (Usage, error) {
	e, err := t.entries()
	if err != nil {
		return Usage{}, err
	}
	u := Usage{Total: t.total}
	for _, owner := range e {
		switch {
		case owner == EmptyEntry:
			u.Free++
		case int(owner) < SongCount:
			u.Used++
		default:
			u.Stray++
		}
	}
	return u, nil
}
