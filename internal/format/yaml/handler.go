// Package yaml provides the YAML format handler.
package yaml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/thirteen37/configfile/internal/format"
	"github.com/thirteen37/configfile/internal/resolve"
	"github.com/thirteen37/configfile/value"
)

const defaultIndent = 2

// Handler implements format.Handler for YAML files.
type Handler struct{}

// New creates a new YAML handler.
func New() *Handler {
	return &Handler{}
}

// Parse reads YAML bytes and returns the root mapping.
// Mapping order is preserved. An empty document is an empty mapping.
func (h *Handler) Parse(data []byte, opts format.ParseOptions) (*value.Mapping, error) {
	if err := format.CheckParseOptions(format.YAML, opts); err != nil {
		return nil, err
	}

	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, format.ParseError(format.YAML, err)
	}
	if raw == nil {
		return value.NewMapping(), nil
	}

	ms, ok := raw.(yaml.MapSlice)
	if !ok {
		return nil, format.ParseError(format.YAML, fmt.Errorf("top-level value must be a mapping, got %T", raw))
	}
	return convertMapSlice(ms)
}

func convertMapSlice(ms yaml.MapSlice) (*value.Mapping, error) {
	m := value.NewMapping()
	for _, item := range ms {
		key, ok := item.Key.(string)
		if !ok {
			key = fmt.Sprint(item.Key)
		}
		v, err := convertValue(item.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		m.Set(key, v)
	}
	return m, nil
}

func convertValue(v any) (value.Value, error) {
	switch val := v.(type) {
	case yaml.MapSlice:
		m, err := convertMapSlice(val)
		if err != nil {
			return value.Value{}, err
		}
		return value.Map(m), nil
	case []any:
		items := make([]value.Value, len(val))
		for i, item := range val {
			converted, err := convertValue(item)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = converted
		}
		return value.Sequence(items...), nil
	default:
		return value.From(val)
	}
}

// Serialize writes the tree to YAML bytes in tree order.
// Indent is honoured when it consists of spaces only; YAML forbids tabs.
func (h *Handler) Serialize(tree *value.Mapping, opts format.SerializeOptions) ([]byte, error) {
	indent := defaultIndent
	if opts.Indent != "" {
		if strings.Trim(opts.Indent, " ") != "" {
			return nil, errors.New("failed to serialize YAML: indent must be spaces")
		}
		indent = len(opts.Indent)
	}

	data, err := yaml.MarshalWithOptions(toMapSlice(tree), yaml.Indent(indent))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize YAML: %w", err)
	}
	return data, nil
}

// MarshalValue encodes a single value as YAML, keeping mapping order.
func MarshalValue(v value.Value) ([]byte, error) {
	data, err := yaml.Marshal(toNative(v))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize YAML: %w", err)
	}
	return data, nil
}

func toMapSlice(m *value.Mapping) yaml.MapSlice {
	ms := make(yaml.MapSlice, 0, m.Len())
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		ms = append(ms, yaml.MapItem{Key: k, Value: toNative(v)})
	}
	return ms
}

func toNative(v value.Value) any {
	switch v.Kind() {
	case value.KindMapping:
		m, _ := v.AsMapping()
		return toMapSlice(m)
	case value.KindSequence:
		items, _ := v.AsSequence()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = toNative(item)
		}
		return out
	default:
		return v.Native()
	}
}

// Limit reports that YAML mappings nest without limit.
func (h *Handler) Limit() resolve.Limit {
	return resolve.Unlimited
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
