package sav

import (
	"fmt"
	"strings"
)

// projectHeaderSize is the name plus version prefix of a project payload.
const projectHeaderSize = NameLen + 1

// Project is a standalone song: an ASCII name, a version byte and the packed
// token body, not yet split into blocks.
type Project struct {
	Name    string
	Version byte
	Body    []byte
}

// ParseProject splits a project payload. The body must hold at least one
// byte.
func ParseProject(b []byte) (Project, error) {
	if len(b) <= projectHeaderSize {
		return Project{}, fmt.Errorf("%w: %d bytes", ErrInvalidProject, len(b))
	}
	name := string(b[:NameLen])
	if i := strings.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	body := make([]byte, len(b)-projectHeaderSize)
	copy(body, b[projectHeaderSize:])
	return Project{
		Name:    name,
		Version: b[NameLen],
		Body:    body,
	}, nil
}

// MarshalBinary lays the project out as name, version and body.
func (p Project) MarshalBinary() ([]byte, error) {
	out := make([]byte, projectHeaderSize+len(p.Body))
	copy(out[:NameLen], p.Name)
	out[NameLen] = p.Version
	copy(out[projectHeaderSize:], p.Body)
	return out, nil
}

// FileName derives a file name from the song name as the tracker would show
// it, with the version in hex: "MYSONG.0A" + ext.
func (p Project) FileName(ext string) string {
	enc := EncodeName(p.Name)
	name := strings.TrimSpace(DecodeName(enc[:]))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "UNTITLED"
	}
	return fmt.Sprintf("%s.%02X%s", name, p.Version, ext)
}
