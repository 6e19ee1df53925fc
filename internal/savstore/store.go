// Package savstore persists save files and project payloads on disk.
package savstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samcharles93/gbsav/pkg/sav"
)

// ProjectExt is the extension given to exported project payloads.
const ProjectExt = ".gbsong"

// BackupSuffix is appended to a save's path when a backup is requested.
const BackupSuffix = ".bak"

var ErrNotRegular = errors.New("savstore: not a regular file")

// Doc is a save loaded into an owned, writable buffer.
type Doc struct {
	Path      string
	Container *sav.Container
	info      os.FileMode
}

// Load reads the save at path into memory. The file itself is not held open.
func Load(path string) (*Doc, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !st.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	mf, err := sav.Open(path)
	if err != nil {
		return nil, err
	}
	buf := mf.Clone()
	if err := mf.Close(); err != nil {
		return nil, err
	}

	c, err := sav.New(buf)
	if err != nil {
		return nil, err
	}
	return &Doc{Path: path, Container: c, info: st.Mode().Perm()}, nil
}

// Create formats a blank save and writes it to path. Existing files are not
// overwritten.
func Create(path string, variant sav.Variant) (*Doc, error) {
	buf, err := sav.Format(variant)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("savstore: %s: %w", path, os.ErrExist)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := WriteAtomic(path, buf, 0o644); err != nil {
		return nil, err
	}
	c, err := sav.New(buf)
	if err != nil {
		return nil, err
	}
	return &Doc{Path: path, Container: c, info: 0o644}, nil
}

// Commit writes the buffer back to Path, replacing the file atomically. With
// backup set, the previous contents are kept at Path+BackupSuffix.
func (d *Doc) Commit(backup bool) error {
	if d == nil || d.Container == nil {
		return os.ErrClosed
	}
	if backup {
		if err := copyFile(d.Path, d.Path+BackupSuffix, d.perm()); err != nil {
			return fmt.Errorf("backup %s: %w", d.Path, err)
		}
	}
	return WriteAtomic(d.Path, d.Container.Bytes(), d.perm())
}

func (d *Doc) perm() os.FileMode {
	if d.info == 0 {
		return 0o644
	}
	return d.info
}

// WriteAtomic writes data to a temp file next to path and renames it over
// path, so readers never observe a half-written save.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	return WriteAtomic(dst, data, perm)
}
