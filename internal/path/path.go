// Package path provides key path abstractions for addressing entries in a
// configuration tree.
//
// A key is either dotted ("database.port", with `\.` for a literal dot) or a
// JSON array of segments (`["hosts", "example.com"]`). Any key that starts
// with '[' is read as a JSON array; a first segment that itself begins with
// '[' can only be addressed in array form, e.g. `["[x]", "y"]`.
package path

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned for keys that cannot be split into non-empty
// segments.
var ErrInvalidKey = errors.New("invalid key")

// Path represents a selector for navigating a configuration tree.
type Path interface {
	// Segments returns the path as a slice of string keys.
	Segments() []string

	// String returns a canonical string representation.
	String() string
}

// KeyPath is a path written as a dotted key.
// Example: "database.port"
//
// A literal dot inside a segment is written as `\.` and a literal backslash
// as `\\`.
type KeyPath struct {
	segments []string
}

// ParseKey splits a dotted key into segments.
func ParseKey(key string) (*KeyPath, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	var (
		segments []string
		current  strings.Builder
	)
	for i := 0; i < len(key); i++ {
		switch c := key[i]; c {
		case '\\':
			if i+1 >= len(key) || (key[i+1] != '.' && key[i+1] != '\\') {
				return nil, fmt.Errorf("%w: %q: dangling escape at offset %d", ErrInvalidKey, key, i)
			}
			i++
			current.WriteByte(key[i])
		case '.':
			segments = append(segments, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	segments = append(segments, current.String())

	for i, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("%w: %q: empty segment %d", ErrInvalidKey, key, i)
		}
	}
	return &KeyPath{segments: segments}, nil
}

// Segments returns the path segments.
func (p *KeyPath) Segments() []string {
	return p.segments
}

// String returns the dotted key, escaping dots and backslashes in segments.
func (p *KeyPath) String() string {
	return JoinKey(p.segments)
}

// JoinKey joins segments into a dotted key that ParseKey splits back into the
// same segments.
func JoinKey(segments []string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		s = strings.ReplaceAll(s, `\`, `\\`)
		escaped[i] = strings.ReplaceAll(s, ".", `\.`)
	}
	return strings.Join(escaped, ".")
}

// ArrayPath is a path specified as an array of string keys.
// Example: ["agent", "default_model"]
type ArrayPath struct {
	segments []string
}

// NewArrayPath creates a new ArrayPath from string segments.
func NewArrayPath(segments []string) *ArrayPath {
	return &ArrayPath{segments: segments}
}

// ParseArrayPath parses a JSON array string into an ArrayPath.
// Example input: `["agent", "default_model"]`
func ParseArrayPath(s string) (*ArrayPath, error) {
	var segments []string
	if err := json.Unmarshal([]byte(s), &segments); err != nil {
		return nil, fmt.Errorf("%w: %q: not a JSON string array: %w", ErrInvalidKey, s, err)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: empty path array", ErrInvalidKey)
	}
	for i, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%w: empty segment %d", ErrInvalidKey, i)
		}
	}
	return &ArrayPath{segments: segments}, nil
}

// Segments returns the path segments.
func (p *ArrayPath) Segments() []string {
	return p.segments
}

// String returns the path as a JSON array string.
func (p *ArrayPath) String() string {
	data, _ := json.Marshal(p.segments)
	return string(data)
}

// Parse accepts either a JSON array path (when s starts with '[') or a dotted
// key.
func Parse(s string) (Path, error) {
	if strings.HasPrefix(s, "[") {
		return ParseArrayPath(s)
	}
	return ParseKey(s)
}
