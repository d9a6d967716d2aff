package diagfmt

import (
	"os"
	"path/filepath"
	"strconv"

	"cito/internal/source"
)

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode, baseDir string) string {
	f := fs.Get(id)
	if f == nil {
		return "-"
	}
	virtual := f.Flags&source.FileVirtual != 0
	switch {
	case mode == PathModeBasename:
		return filepath.Base(f.Path)
	case virtual:
		return f.Path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		base := baseDir
		if base == "" {
			base, _ = os.Getwd()
		}
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			return f.Path
		}
		if rel, err := filepath.Rel(base, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return f.Path
}

func formatPos(fs *source.FileSet, pos source.Pos, mode PathMode, baseDir string) string {
	path := formatPath(fs, pos.File, mode, baseDir)
	if !pos.IsValid() {
		return path
	}
	return path + ":" + strconv.Itoa(pos.Line)
}
