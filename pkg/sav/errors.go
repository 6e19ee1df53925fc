package sav

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidContainerSize = errors.New("invalid save container size")
	ErrCorrupt              = errors.New("corrupt song data")
	ErrNoFreeSlot           = errors.New("no free song slot")
	ErrOutOfBlocks          = errors.New("out of free blocks")
	ErrInvalidSong          = errors.New("invalid song")
	ErrInvalidProject       = errors.New("invalid project payload")
	ErrSongRange            = errors.New("song id out of range")
	ErrBlockRange           = errors.New("block index out of range")
)

// OpError records the facade operation and song that failed.
type OpError struct {
	Op   string
	Song int
	Err  error
}

func (e *OpError) Error() string {
	if e.Song < 0 {
		return fmt.Sprintf("sav %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sav %s song %d: %v", e.Op, e.Song, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opErr(op string, song int, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Song: song, Err: err}
}

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}

func checkSong(song int) error {
	if song < 0 || song >= SongCount {
		return fmt.Errorf("%w: %d", ErrSongRange, song)
	}
	return nil
}
