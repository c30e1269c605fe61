// Package properties provides the Java properties format handler.
package properties

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/magiconair/properties"

	"github.com/thirteen37/configfile/internal/format"
	"github.com/thirteen37/configfile/internal/resolve"
	"github.com/thirteen37/configfile/value"
)

// Handler implements format.Handler for .properties files.
//
// Dotted property names nest: "db.host=x" parses to {"db": {"host": "x"}}.
// Every parsed value is a value.Scalar. Empty mappings have no
// representation and disappear on serialization.
type Handler struct{}

// New creates a new properties handler.
func New() *Handler {
	return &Handler{}
}

// Parse reads properties bytes and returns the nested tree.
// ${...} references are not expanded.
func (h *Handler) Parse(data []byte, opts format.ParseOptions) (*value.Mapping, error) {
	if err := format.CheckParseOptions(format.Properties, opts); err != nil {
		return nil, err
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, format.ParseError(format.Properties, err)
	}

	root := value.NewMapping()
	for _, key := range p.Keys() {
		val, _ := p.Get(key)
		if err := insert(root, key, val); err != nil {
			return nil, format.ParseError(format.Properties, err)
		}
	}
	return root, nil
}

// insert places a flat property into the tree, nesting on dots.
func insert(root *value.Mapping, key, val string) error {
	segments := strings.Split(key, ".")
	for _, s := range segments {
		if s == "" {
			return fmt.Errorf("property %q has an empty name segment", key)
		}
	}

	cur := root
	for i, s := range segments[:len(segments)-1] {
		next, ok := cur.Get(s)
		if !ok {
			child := value.NewMapping()
			cur.Set(s, value.Map(child))
			cur = child
			continue
		}
		child, isMap := next.AsMapping()
		if !isMap {
			return fmt.Errorf("property %q conflicts with value at %q", key, strings.Join(segments[:i+1], "."))
		}
		cur = child
	}

	last := segments[len(segments)-1]
	if existing, ok := cur.Get(last); ok && existing.Kind() == value.KindMapping {
		return fmt.Errorf("property %q conflicts with nested properties below it", key)
	}
	cur.Set(last, value.Scalar(val))
	return nil
}

// Serialize flattens the tree into dotted properties in tree order.
// Sequences are written as JSON text and null as an empty value. A key
// segment containing a dot would read back as two segments and is rejected.
func (h *Handler) Serialize(tree *value.Mapping, opts format.SerializeOptions) ([]byte, error) {
	p := properties.NewProperties()
	p.DisableExpansion = true

	if err := flatten(p, "", tree); err != nil {
		return nil, fmt.Errorf("failed to serialize properties: %w", err)
	}

	var buf bytes.Buffer
	if _, err := p.Write(&buf, properties.UTF8); err != nil {
		return nil, fmt.Errorf("failed to serialize properties: %w", err)
	}
	return buf.Bytes(), nil
}

func flatten(p *properties.Properties, prefix string, m *value.Mapping) error {
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		if strings.Contains(k, ".") {
			return fmt.Errorf("key segment %q contains a dot", k)
		}
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		if sub, ok := v.AsMapping(); ok {
			if err := flatten(p, key, sub); err != nil {
				return err
			}
			continue
		}
		if _, _, err := p.Set(key, v.Text()); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
	}
	return nil
}

// Limit reports that dotted property names nest without limit.
func (h *Handler) Limit() resolve.Limit {
	return resolve.Unlimited
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
