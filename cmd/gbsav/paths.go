package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samcharles93/gbsav/internal/savstore"
	"github.com/samcharles93/gbsav/pkg/sav"
)

const envExportDir = "GBSAV_EXPORT_DIR"

// resolveExportPath picks where an exported project is written: the --out
// flag, then $GBSAV_EXPORT_DIR, then the configured export_dir, then the
// working directory.
func resolveExportPath(outFlag, configDir string, p sav.Project) (string, error) {
	outFlag = strings.TrimSpace(outFlag)
	if outFlag != "" {
		outPath := filepath.Clean(outFlag)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return "", err
		}
		return outPath, nil
	}

	dir := strings.TrimSpace(os.Getenv(envExportDir))
	if dir == "" {
		dir = strings.TrimSpace(configDir)
	}
	if dir == "" {
		dir = "."
	}
	dir = expandHome(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return savstore.ExportPath(dir, p), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
