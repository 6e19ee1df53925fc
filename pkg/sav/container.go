package sav

import (
	"fmt"

	"github.com/samcharles93/gbsav/pkg/byteview"
)

// Container is the save engine over one buffer. Callers must serialize
// access; operations are not transactional and an interrupted import keeps
// the blocks it already allocated.
type Container struct {
	view   *byteview.View
	layout Layout
	alloc  AllocTable
	dir    Directory
}

// New wraps buf without copying it. Writes made by the container land in
// buf, and mirrored images are kept mirrored.
func New(buf []byte) (*Container, error) {
	layout, err := DetectLayout(buf)
	if err != nil {
		return nil, opErr("open", -1, err)
	}
	v := byteview.New(buf, byteview.WithMirror(layout.mirrorPeriod()))
	return &Container{
		view:   v,
		layout: layout,
		alloc:  newAllocTable(v, layout.Blocks),
		dir:    newDirectory(v),
	}, nil
}

func (c *Container) Layout() Layout {
	return c.layout
}

// Bytes returns the underlying buffer.
func (c *Container) Bytes() []byte {
	return c.view.Raw()
}

func (c *Container) Alloc() AllocTable {
	return c.alloc
}

func (c *Container) Directory() Directory {
	return c.dir
}

// Block returns block index as a slice of the buffer. Callers must treat it
// as read-only.
func (c *Container) Block(index int) ([]byte, error) {
	if err := c.alloc.checkBlock(index); err != nil {
		return nil, err
	}
	return c.view.Slice(blockOffset(index), BlockSize)
}

// Chain returns the blocks owned by song.
func (c *Container) Chain(song int) (Chain, error) {
	blocks, err := c.alloc.BlocksOf(song)
	if err != nil {
		return Chain{}, err
	}
	return Chain{Song: song, Blocks: blocks}, nil
}

// Occupied reports whether song owns any block.
func (c *Container) Occupied(song int) (bool, error) {
	n, err := c.alloc.UsedBy(song)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FreeSlot returns the lowest song id that owns no blocks.
func (c *Container) FreeSlot() (int, error) {
	for song := 0; song < SongCount; song++ {
		used, err := c.Occupied(song)
		if err != nil {
			return 0, err
		}
		if !used {
			return song, nil
		}
	}
	return 0, ErrNoFreeSlot
}

// Decode materialises song.
func (c *Container) Decode(song int) (Decoded, error) {
	chain, err := c.Chain(song)
	if err != nil {
		return Decoded{}, opErr("decode", song, err)
	}
	dec, err := Decode(c, chain)
	if err != nil {
		return Decoded{}, opErr("decode", song, err)
	}
	return dec, nil
}

// Valid reports whether song decodes to a terminated stream.
func (c *Container) Valid(song int) bool {
	_, err := c.Decode(song)
	return err == nil
}

// FindNextChainSlot returns the absolute address of the first pending chain
// switch operand in block.
func (c *Container) FindNextChainSlot(block int) (int, bool, error) {
	data, err := c.Block(block)
	if err != nil {
		return 0, false, err
	}
	off, ok := FindNextChainSlot(data)
	if !ok {
		return 0, false, nil
	}
	return blockOffset(block) + off, true, nil
}

// Import stores a project in the first free song slot and returns its id.
// The body is copied block by block; each block's pending chain switch is
// patched with the id of the block allocated after it. Running out of blocks
// part way leaves the blocks already written allocated to the song.
func (c *Container) Import(p Project) (int, error) {
	if len(p.Body) == 0 {
		return 0, opErr("import", -1, fmt.Errorf("%w: empty body", ErrInvalidProject))
	}
	song, err := c.FreeSlot()
	if err != nil {
		return 0, opErr("import", -1, err)
	}
	if err := c.dir.SetName(song, p.Name); err != nil {
		return 0, opErr("import", song, err)
	}
	if err := c.dir.SetVersion(song, p.Version); err != nil {
		return 0, opErr("import", song, err)
	}

	body := p.Body
	pending := -1
	for len(body) > 0 {
		block, ok, err := c.alloc.FirstFree()
		if err != nil {
			return song, opErr("import", song, err)
		}
		if !ok {
			return song, opErr("import", song, ErrOutOfBlocks)
		}
		if err := c.alloc.Allocate(block, song); err != nil {
			return song, opErr("import", song, err)
		}
		if pending >= 0 {
			if err := c.view.PutU8(pending, byte(BlockID(block))); err != nil {
				return song, opErr("import", song, err)
			}
		}

		n := min(len(body), BlockSize)
		off := blockOffset(block)
		if err := c.view.PutBytes(off, body[:n]); err != nil {
			return song, opErr("import", song, err)
		}
		if n < BlockSize {
			if err := c.view.Fill(off+n, BlockSize-n, 0); err != nil {
				return song, opErr("import", song, err)
			}
		}
		body = body[n:]

		addr, found, err := c.FindNextChainSlot(block)
		if err != nil {
			return song, opErr("import", song, err)
		}
		if !found {
			break
		}
		pending = addr
	}
	return song, nil
}

// Export returns song as a project whose body is the song's blocks, still
// encoded, in chain order.
func (c *Container) Export(song int) (Project, error) {
	dec, err := c.Decode(song)
	if err != nil {
		return Project{}, opErr("export", song, fmt.Errorf("%w: %w", ErrInvalidSong, err))
	}
	name, err := c.dir.Name(song)
	if err != nil {
		return Project{}, opErr("export", song, err)
	}
	version, err := c.dir.Version(song)
	if err != nil {
		return Project{}, opErr("export", song, err)
	}
	body := make([]byte, 0, len(dec.Order)*BlockSize)
	for _, block := range dec.Order {
		raw, err := c.Block(block)
		if err != nil {
			return Project{}, opErr("export", song, err)
		}
		body = append(body, raw...)
	}
	return Project{Name: name, Version: version, Body: body}, nil
}

// Delete frees every block of song and clears its directory entry.
func (c *Container) Delete(song int) error {
	blocks, err := c.alloc.BlocksOf(song)
	if err != nil {
		return opErr("delete", song, err)
	}
	for _, block := range blocks {
		if err := c.alloc.Free(block); err != nil {
			return opErr("delete", song, err)
		}
	}
	if err := c.dir.Clear(song); err != nil {
		return opErr("delete", song, err)
	}
	active, ok, err := c.dir.Active()
	if err != nil {
		return opErr("delete", song, err)
	}
	if ok && active == song {
		if err := c.dir.ClearActive(); err != nil {
			return opErr("delete", song, err)
		}
	}
	return nil
}

// Activate decodes song into working memory and marks it active.
func (c *Container) Activate(song int) error {
	dec, err := c.Decode(song)
	if err != nil {
		return opErr("activate", song, fmt.Errorf("%w: %w", ErrInvalidSong, err))
	}
	if err := c.view.PutBytes(0, dec.Data); err != nil {
		return opErr("activate", song, err)
	}
	if err := c.view.Fill(len(dec.Data), WorkingMemSize-len(dec.Data), 0); err != nil {
		return opErr("activate", song, err)
	}
	if err := c.dir.SetActive(song); err != nil {
		return opErr("activate", song, err)
	}
	return nil
}
