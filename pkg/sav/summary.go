package sav

import "errors"

// SongInfo describes one occupied song slot.
type SongInfo struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Version int    `json:"version"`
	Blocks  int    `json:"blocks"`
	Valid   bool   `json:"valid"`
	Active  bool   `json:"active"`
	Error   string `json:"error,omitempty"`
}

// Summary is a snapshot of a whole container.
type Summary struct {
	Valid       bool       `json:"valid"`
	Reason      string     `json:"reason,omitempty"`
	Size        int        `json:"size"`
	Variant     string     `json:"variant,omitempty"`
	Is64KB      bool       `json:"is_64kb"`
	Initialized bool       `json:"initialized"`
	TotalBlocks int        `json:"total_blocks"`
	UsedBlocks  int        `json:"used_blocks"`
	FreeBlocks  int        `json:"free_blocks"`
	StrayBlocks int        `json:"stray_blocks,omitempty"`
	ActiveSong  *int       `json:"active_song,omitempty"`
	Songs       []SongInfo `json:"songs"`
}

// Parse summarises buf. It never fails: a buffer that is not a save yields
// a summary with Valid false and a Reason.
func Parse(buf []byte) Summary {
	c, err := New(buf)
	if err != nil {
		return Summary{Size: len(buf), Reason: reason(err), Songs: []SongInfo{}}
	}
	s, err := c.Summary()
	if err != nil {
		return Summary{Size: len(buf), Reason: reason(err), Songs: []SongInfo{}}
	}
	return s
}

func reason(err error) string {
	if errors.Is(err, ErrInvalidContainerSize) {
		return "not a valid save file"
	}
	return err.Error()
}

// Summary re-reads the container and summarises it.
func (c *Container) Summary() (Summary, error) {
	usage, err := c.alloc.Usage()
	if err != nil {
		return Summary{}, opErr("summary", -1, err)
	}
	initialized, err := c.dir.Initialized()
	if err != nil {
		return Summary{}, opErr("summary", -1, err)
	}
	songs, err := c.Songs()
	if err != nil {
		return Summary{}, err
	}
	s := Summary{
		Valid:       true,
		Size:        c.layout.Size,
		Variant:     c.layout.Variant.String(),
		Is64KB:      c.layout.Is64KB(),
		Initialized: initialized,
		TotalBlocks: usage.Total,
		UsedBlocks:  usage.Used,
		FreeBlocks:  usage.Free,
		StrayBlocks: usage.Stray,
		Songs:       songs,
	}
	if active, ok, err := c.dir.Active(); err != nil {
		return Summary{}, opErr("summary", -1, err)
	} else if ok {
		s.ActiveSong = &active
	}
	return s, nil
}

// Songs lists occupied slots in id order. Songs that fail to decode are
// listed with Valid false and the decode error.
func (c *Container) Songs() ([]SongInfo, error) {
	active, hasActive, err := c.dir.Active()
	if err != nil {
		return nil, opErr("songs", -1, err)
	}
	out := []SongInfo{}
	for song := 0; song < SongCount; song++ {
		blocks, err := c.alloc.UsedBy(song)
		if err != nil {
			return nil, opErr("songs", song, err)
		}
		if blocks == 0 {
			continue
		}
		name, err := c.dir.Name(song)
		if err != nil {
			return nil, opErr("songs", song, err)
		}
		version, err := c.dir.Version(song)
		if err != nil {
			return nil, opErr("songs", song, err)
		}
		info := SongInfo{
			ID:      song,
			Name:    name,
			Version: int(version),
			Blocks:  blocks,
			Valid:   true,
			Active:  hasActive && active == song,
		}
		if _, err := c.Decode(song); err != nil {
			info.Valid = false
			info.Error = err.Error()
		}
		out = append(out, info)
	}
	return out, nil
}
