// Package resolve walks, creates and removes entries of a configuration tree
// addressed by key path segments.
package resolve

import (
	"errors"
	"fmt"

	"github.com/thirteen37/configfile/internal/path"
	"github.com/thirteen37/configfile/value"
)

var (
	// ErrKeyNotFound is returned when a path does not resolve to an entry.
	ErrKeyNotFound = errors.New("key not found")

	// ErrTypeConflict is returned when a write would have to descend
	// through an existing non-mapping value.
	ErrTypeConflict = errors.New("type conflict")
)

// Mode selects what Resolve does at the end of the path.
type Mode int

const (
	Read Mode = iota
	Write
	Delete
)

func (m Mode) String() string {
	switch m {
	case Read:
		return "read"
	case Write:
		return "write"
	case Delete:
		return "delete"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Limit is the maximum number of addressable segments a format supports.
// Writes deeper than the limit fold the remaining segments into a nested
// mapping stored at the limit.
type Limit int

const (
	// Unlimited allows arbitrary nesting.
	Unlimited Limit = 0
	// TwoLevel allows only section.key, as in INI files.
	TwoLevel Limit = 2
)

func (l Limit) String() string {
	if l <= Unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d-level", int(l))
}

// Request describes one resolution.
type Request struct {
	Mode Mode
	// Limit applies to Write only.
	Limit Limit
	// Value is the value stored by Write.
	Value value.Value
}

// Result is the outcome of a successful resolution.
type Result struct {
	// Value is the located value (Read), the removed value (Delete) or the
	// stored value (Write, after folding).
	Value value.Value
	// Parent is the mapping that holds Key.
	Parent *value.Mapping
	// Key is the last segment actually addressed in Parent.
	Key string
}

// Resolve applies req to the entry named by segments under root.
// A failed Write or Delete leaves the tree unchanged.
func Resolve(root *value.Mapping, segments []string, req Request) (Result, error) {
	if root == nil {
		return Result{}, fmt.Errorf("resolve %s: nil tree", req.Mode)
	}
	if err := validate(segments); err != nil {
		return Result{}, err
	}

	switch req.Mode {
	case Read:
		parent, key, err := locate(root, segments)
		if err != nil {
			return Result{}, err
		}
		v, _ := parent.Get(key)
		return Result{Value: v, Parent: parent, Key: key}, nil

	case Delete:
		parent, key, err := locate(root, segments)
		if err != nil {
			return Result{}, err
		}
		v, _ := parent.Get(key)
		parent.Delete(key)
		return Result{Value: v, Parent: parent, Key: key}, nil

	case Write:
		return write(root, segments, req.Value, req.Limit)
	}
	return Result{}, fmt.Errorf("resolve: unknown mode %s", req.Mode)
}

// Get returns the value at segments.
func Get(root *value.Mapping, segments []string) (value.Value, error) {
	res, err := Resolve(root, segments, Request{Mode: Read})
	return res.Value, err
}

// Set stores v at segments, creating missing mappings.
func Set(root *value.Mapping, segments []string, v value.Value, limit Limit) error {
	_, err := Resolve(root, segments, Request{Mode: Write, Limit: limit, Value: v})
	return err
}

// Remove deletes the entry at segments.
func Remove(root *value.Mapping, segments []string) error {
	_, err := Resolve(root, segments, Request{Mode: Delete})
	return err
}

func validate(segments []string) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: empty path", path.ErrInvalidKey)
	}
	for i, s := range segments {
		if s == "" {
			return fmt.Errorf("%w: empty segment %d", path.ErrInvalidKey, i)
		}
	}
	return nil
}

// locate walks to the mapping holding the last segment.
func locate(root *value.Mapping, segments []string) (*value.Mapping, string, error) {
	current := root
	last := len(segments) - 1
	for _, seg := range segments[:last] {
		next, ok := current.Get(seg)
		if !ok {
			return nil, "", notFound(segments)
		}
		m, ok := next.AsMapping()
		if !ok {
			return nil, "", notFound(segments)
		}
		current = m
	}
	if !current.Has(segments[last]) {
		return nil, "", notFound(segments)
	}
	return current, segments[last], nil
}

func write(root *value.Mapping, segments []string, v value.Value, limit Limit) (Result, error) {
	walk, key := segments[:len(segments)-1], segments[len(segments)-1]
	if limit > Unlimited && len(segments) > int(limit) {
		walk, key = segments[:limit-1], segments[limit-1]
		v = fold(segments[limit:], v)
	}

	// Check the existing prefix before creating anything.
	current := root
	depth := 0
	for ; depth < len(walk); depth++ {
		next, ok := current.Get(walk[depth])
		if !ok {
			break
		}
		m, ok := next.AsMapping()
		if !ok {
			return Result{}, fmt.Errorf("%w: %s holds a %s, not a mapping",
				ErrTypeConflict, path.JoinKey(walk[:depth+1]), next.Kind())
		}
		current = m
	}

	for _, seg := range walk[depth:] {
		m := value.NewMapping()
		current.Set(seg, value.Map(m))
		current = m
	}

	current.Set(key, v)
	return Result{Value: v, Parent: current, Key: key}, nil
}

// fold nests v under the remaining segments: [c d] -> {c: {d: v}}.
func fold(rest []string, v value.Value) value.Value {
	for i := len(rest) - 1; i >= 0; i-- {
		m := value.NewMapping()
		m.Set(rest[i], v)
		v = value.Map(m)
	}
	return v
}

func notFound(segments []string) error {
	return fmt.Errorf("%w: %s", ErrKeyNotFound, path.JoinKey(segments))
}
