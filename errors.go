package configfile

import (
	"errors"

	"github.com/thirteen37/configfile/internal/format"
	"github.com/thirteen37/configfile/internal/path"
	"github.com/thirteen37/configfile/internal/resolve"
	"github.com/thirteen37/configfile/value"
)

// Errors returned by this package. Match them with errors.Is. Missing files
// are reported with errors wrapping fs.ErrNotExist.
var (
	// ErrParsing is returned when file contents are malformed.
	ErrParsing = format.ErrParsing

	// ErrUnsupportedFormat is returned for unknown extensions and formats.
	ErrUnsupportedFormat = format.ErrUnsupportedFormat

	// ErrKeyNotFound is returned when a key does not resolve.
	ErrKeyNotFound = resolve.ErrKeyNotFound

	// ErrTypeConflict is returned when a write would descend through a
	// non-mapping value.
	ErrTypeConflict = resolve.ErrTypeConflict

	// ErrInvalidKey is returned for malformed keys.
	ErrInvalidKey = path.ErrInvalidKey

	// ErrCast is returned when a value cannot take the requested return type.
	ErrCast = value.ErrCast

	// ErrIsDirectory is returned when a config or original path names a
	// directory.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrSameFile is returned by RestoreOriginal when the original resolves
	// to the config file itself.
	ErrSameFile = errors.New("original and current file are the same")

	// ErrNoFile is returned by Save and RestoreOriginal on a ConfigFile built
	// with Parse.
	ErrNoFile = errors.New("config has no backing file")
)
