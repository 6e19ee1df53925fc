package sav

import (
	"strings"

	"github.com/samcharles93/gbsav/pkg/byteview"
)

// Directory reads and writes the fixed song name, version and active slot
// tables.
type Directory struct {
	v *byteview.View
}

func newDirectory(v *byteview.View) Directory {
	return Directory{v: v}
}

// RawName returns the stored name bytes of song.
func (d Directory) RawName(song int) ([]byte, error) {
	if err := checkSong(song); err != nil {
		return nil, err
	}
	return d.v.Bytes(NameTableOffset+song*NameLen, NameLen)
}

// Name returns the decoded name of song with trailing spaces removed.
func (d Directory) Name(song int) (string, error) {
	raw, err := d.RawName(song)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(DecodeName(raw), " "), nil
}

// SetName stores an ASCII name, mapping unsupported characters to spaces.
func (d Directory) SetName(song int, name string) error {
	if err := checkSong(song); err != nil {
		return err
	}
	enc := EncodeName(name)
	return d.v.PutBytes(NameTableOffset+song*NameLen, enc[:])
}

func (d Directory) Version(song int) (byte, error) {
	if err := checkSong(song); err != nil {
		return 0, err
	}
	return d.v.U8(VersionTableOffset + song)
}

func (d Directory) SetVersion(song int, version byte) error {
	if err := checkSong(song); err != nil {
		return err
	}
	return d.v.PutU8(VersionTableOffset+song, version)
}

// Clear zeroes the name and version of song.
func (d Directory) Clear(song int) error {
	if err := checkSong(song); err != nil {
		return err
	}
	if err := d.v.Fill(NameTableOffset+song*NameLen, NameLen, 0); err != nil {
		return err
	}
	return d.v.PutU8(VersionTableOffset+song, 0)
}

// Active returns the active song, if the pointer names a valid slot.
func (d Directory) Active() (int, bool, error) {
	b, err := d.v.U8(ActiveSlotOffset)
	if err != nil {
		return 0, false, err
	}
	if int(b) >= SongCount {
		return 0, false, nil
	}
	return int(b), true, nil
}

func (d Directory) SetActive(song int) error {
	if err := checkSong(song); err != nil {
		return err
	}
	return d.v.PutU8(ActiveSlotOffset, byte(song))
}

func (d Directory) ClearActive() error {
	return d.v.PutU8(ActiveSlotOffset, NoSong)
}

// Initialized reports whether the init marker is present.
func (d Directory) Initialized() (bool, error) {
	s, err := d.v.FixedString(InitMarkOffset, len(InitMark))
	if err != nil {
		return false, err
	}
	return s == InitMark, nil
}
