package diagfmt

import (
	"path/filepath"

	"rpncalc/internal/source"
)

func formatPath(f *source.File, mode PathMode, base string) string {
	if f == nil {
		return "<unknown>"
	}
	if f.Flags&source.FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
	case PathModeRelative:
		if base == "" {
			base = "."
		}
		absBase, errBase := filepath.Abs(base)
		absPath, errPath := filepath.Abs(f.Path)
		if errBase == nil && errPath == nil {
			if rel, err := filepath.Rel(absBase, absPath); err == nil {
				return filepath.ToSlash(rel)
			}
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	return f.Path
}
