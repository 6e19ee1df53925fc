package savstore

import (
	"os"
	"path/filepath"

	"github.com/samcharles93/gbsav/pkg/sav"
)

// ReadProject loads a project payload written by WriteProject or the
// tracker's own export.
func ReadProject(path string) (sav.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sav.Project{}, err
	}
	return sav.ParseProject(data)
}

// WriteProject stores p at path.
func WriteProject(path string, p sav.Project) error {
	data, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	return WriteAtomic(path, data, 0o644)
}

// ExportPath is the default destination for p inside dir.
func ExportPath(dir string, p sav.Project) string {
	return filepath.Join(dir, p.FileName(ProjectExt))
}
