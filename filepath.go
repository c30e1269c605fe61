package configfile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/thirteen37/configfile/internal/format"
)

// expandPath expands a leading ~ and cleans p.
func expandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to expand %s: %w", p, err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Clean(p), nil
}

// checkFile returns the file info of p, which must exist and not be a
// directory.
func checkFile(fsys afero.Fs, p string) (fs.FileInfo, error) {
	info, err := fsys.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", p, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, p)
	}
	return info, nil
}

const defaultFileMode fs.FileMode = 0o644

// fileMode returns the permissions of p, or defaultFileMode when p is
// missing.
func fileMode(fsys afero.Fs, p string) fs.FileMode {
	if info, err := fsys.Stat(p); err == nil {
		return info.Mode().Perm()
	}
	return defaultFileMode
}

// detectFormat maps the extension of p to a format.
func detectFormat(p string) (Format, error) {
	f, err := format.FromExtension(filepath.Ext(p))
	if err != nil {
		return FormatUnknown, fmt.Errorf("%s: %w", p, err)
	}
	return f, nil
}

// originalPath inserts marker before the extension: config.json becomes
// config.original.json.
func originalPath(p, marker string) string {
	ext := filepath.Ext(p)
	return strings.TrimSuffix(p, ext) + "." + marker + ext
}

// sameFile reports whether a and b name the same file.
func sameFile(fsys afero.Fs, a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := fsys.Stat(a)
	if err != nil {
		return false
	}
	bi, err := fsys.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
