package sav

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// File is a save mapped read-only from disk. Use it for inspection and
// export; load the file into an owned buffer to modify it.
type File struct {
	Data    []byte
	Layout  Layout
	mmapped bool
}

// Open maps a save file read-only and validates its size.
// If mmap is unavailable, it falls back to ReadAt-based loading.
// The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 < 0 || size64 > SizeFull || !ValidSize(int(size64)) {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrInvalidContainerSize, path, size64)
	}
	size := int(size64)

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		sf, parseErr := newFile(data, true)
		if parseErr != nil {
			_ = unix.Munmap(data)
			return nil, parseErr
		}
		return sf, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return newFile(data, false)
}

// OpenReaderAt loads a save from a random-access reader without mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < 0 || size > SizeFull || !ValidSize(int(size)) {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidContainerSize, size)
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return newFile(data, false)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

func newFile(data []byte, mmapped bool) (*File, error) {
	layout, err := DetectLayout(data)
	if err != nil {
		return nil, err
	}
	return &File{Data: data, Layout: layout, mmapped: mmapped}, nil
}

// Close releases any mmap backing.
func (f *File) Close() error {
	if f == nil || f.Data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.mmapped = false
	return err
}

// container wraps the mapped bytes. Only read-only container methods may be
// called on it: mapped pages are not writable.
func (f *File) container() (*Container, error) {
	if f == nil || f.Data == nil {
		return nil, opErr("open", -1, os.ErrClosed)
	}
	return New(f.Data)
}

// Summary summarises the mapped save.
func (f *File) Summary() Summary {
	if f == nil || f.Data == nil {
		return Summary{Reason: os.ErrClosed.Error(), Songs: []SongInfo{}}
	}
	return Parse(f.Data)
}

// Export extracts song from the mapped save.
func (f *File) Export(song int) (Project, error) {
	c, err := f.container()
	if err != nil {
		return Project{}, err
	}
	return c.Export(song)
}

// Decode materialises song from the mapped save.
func (f *File) Decode(song int) (Decoded, error) {
	c, err := f.container()
	if err != nil {
		return Decoded{}, err
	}
	return c.Decode(song)
}

// Clone copies the mapped bytes into an owned, writable buffer.
func (f *File) Clone() []byte {
	if f == nil {
		return nil
	}
	out := make([]byte, len(f.Data))
	copy(out, f.Data)
	return out
}
