// Package document binds a parsed configuration tree to its format handler
// and exposes path-addressed access to it.
package document

import (
	"fmt"

	"github.com/thirteen37/configfile/internal/format"
	"github.com/thirteen37/configfile/internal/path"
	"github.com/thirteen37/configfile/internal/resolve"
	"github.com/thirteen37/configfile/value"
)

// Options controls parsing and serialization of a Document.
type Options struct {
	Parse     format.ParseOptions
	Serialize format.SerializeOptions
}

// Document owns one parsed tree. It is not safe for concurrent use.
type Document struct {
	format  format.Format
	handler format.Handler
	opts    Options
	tree    *value.Mapping
}

// New parses raw as format f.
func New(f format.Format, raw []byte, opts Options) (*Document, error) {
	h, err := HandlerFor(f)
	if err != nil {
		return nil, err
	}

	d := &Document{format: f, handler: h, opts: opts}
	if err := d.Reset(raw); err != nil {
		return nil, err
	}
	return d, nil
}

// Format returns the document's format.
func (d *Document) Format() format.Format {
	return d.format
}

// Limit returns the structural limit of the document's format.
func (d *Document) Limit() resolve.Limit {
	return d.handler.Limit()
}

// Tree returns a copy of the current tree.
func (d *Document) Tree() *value.Mapping {
	return d.tree.Clone()
}

// Get returns a copy of the value at key.
func (d *Document) Get(key string) (value.Value, error) {
	segments, err := segmentsOf(key)
	if err != nil {
		return value.Value{}, err
	}
	v, err := resolve.Get(d.tree, segments)
	if err != nil {
		return value.Value{}, err
	}
	return v.Clone(), nil
}

// Set stores v at key, creating missing mappings.
func (d *Document) Set(key string, v value.Value) error {
	segments, err := segmentsOf(key)
	if err != nil {
		return err
	}
	if err := resolve.Set(d.tree, segments, v.Clone(), d.handler.Limit()); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry at key. Emptied ancestors are kept.
func (d *Document) Delete(key string) error {
	segments, err := segmentsOf(key)
	if err != nil {
		return err
	}
	return resolve.Remove(d.tree, segments)
}

// Has reports whether key exists. With wild set, any mapping in the tree
// holding the last segment of key counts. Malformed keys never exist.
func (d *Document) Has(key string, wild bool) bool {
	segments, err := segmentsOf(key)
	if err != nil {
		return false
	}
	return resolve.Exists(d.tree, segments, wild)
}

// Stringify serializes the tree in the document's format.
func (d *Document) Stringify() (string, error) {
	data, err := d.handler.Serialize(d.tree, d.opts.Serialize)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Reset replaces the tree with the result of parsing raw. On error the
// current tree is kept.
func (d *Document) Reset(raw []byte) error {
	tree, err := d.handler.Parse(raw, d.opts.Parse)
	if err != nil {
		return err
	}
	d.tree = tree
	return nil
}

func segmentsOf(key string) ([]string, error) {
	p, err := path.Parse(key)
	if err != nil {
		return nil, err
	}
	return p.Segments(), nil
}
