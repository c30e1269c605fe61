// Package format provides interfaces and shared helpers for the configuration
// file formats.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thirteen37/configfile/internal/resolve"
	"github.com/thirteen37/configfile/value"
)

var (
	// ErrParsing wraps syntax errors reported while parsing a file.
	ErrParsing = errors.New("parsing error")

	// ErrUnsupportedFormat is returned for unknown formats and extensions.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Format identifies a supported file format.
type Format int

const (
	Unknown Format = iota
	JSON
	INI
	YAML
	TOML
	Properties
)

var formatNames = map[Format]string{
	JSON:       "json",
	INI:        "ini",
	YAML:       "yaml",
	TOML:       "toml",
	Properties: "properties",
}

var extensions = map[string]Format{
	".json":       JSON,
	".jsonc":      JSON,
	".ini":        INI,
	".cfg":        INI,
	".conf":       INI,
	".yaml":       YAML,
	".yml":        YAML,
	".toml":       TOML,
	".properties": Properties,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat maps a format name such as "yaml" to its Format.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	if f, ok := extensions["."+name]; ok {
		return f, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FromExtension maps a file extension (with leading dot) to its Format.
func FromExtension(ext string) (Format, error) {
	if f, ok := extensions[strings.ToLower(ext)]; ok {
		return f, nil
	}
	return Unknown, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	StripComments bool // Strip comments (for JSON/JSONC)
}

// SerializeOptions configures serialization behavior.
type SerializeOptions struct {
	Indent string // Indentation string (e.g., "  " or "\t")
}

// Handler defines the interface for configuration file format handlers.
// Handlers are stateless; the tree they produce is owned by the caller.
type Handler interface {
	// Parse reads raw bytes and returns the root mapping.
	Parse(data []byte, opts ParseOptions) (*value.Mapping, error)

	// Serialize writes the tree back to bytes.
	Serialize(tree *value.Mapping, opts SerializeOptions) ([]byte, error)

	// Limit reports how many key path segments the format can address.
	Limit() resolve.Limit
}

// ParseError wraps a syntax error from the named format with ErrParsing.
func ParseError(f Format, err error) error {
	return fmt.Errorf("%w: failed to parse %s: %w", ErrParsing, strings.ToUpper(f.String()), err)
}
