package value

import (
	"bytes"
	"encoding/json"

	"github.com/iancoleman/orderedmap"
)

// Mapping is an insertion-ordered string-keyed map of Values. Overwriting an
// existing key keeps its position.
type Mapping struct {
	om *orderedmap.OrderedMap
}

// NewMapping creates an empty Mapping.
func NewMapping() *Mapping {
	om := orderedmap.New()
	om.SetEscapeHTML(false)
	return &Mapping{om: om}
}

func (m *Mapping) ordered() *orderedmap.OrderedMap {
	if m.om == nil {
		m.om = orderedmap.New()
		m.om.SetEscapeHTML(false)
	}
	return m.om
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil || m.om == nil {
		return 0
	}
	return len(m.om.Keys())
}

// Keys returns a copy of the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil || m.om == nil {
		return nil
	}
	keys := m.om.Keys()
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil || m.om == nil {
		return Value{}, false
	}
	raw, ok := m.om.Get(key)
	if !ok {
		return Value{}, false
	}
	v, ok := raw.(Value)
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores v under key, appending key if it is new.
func (m *Mapping) Set(key string, v Value) {
	m.ordered().Set(key, v)
}

// Delete removes key and reports whether it was present.
func (m *Mapping) Delete(key string) bool {
	if !m.Has(key) {
		return false
	}
	m.om.Delete(key)
	return true
}

// Equal reports whether both mappings hold equal values under the same keys
// in the same order.
func (m *Mapping) Equal(o *Mapping) bool {
	if m.Len() != o.Len() {
		return false
	}
	keys, otherKeys := m.Keys(), o.Keys()
	for i, k := range keys {
		if otherKeys[i] != k {
			return false
		}
		a, _ := m.Get(k)
		b, _ := o.Get(k)
		if !a.Equal(b) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of m.
func (m *Mapping) Clone() *Mapping {
	out := NewMapping()
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		out.Set(k, v.Clone())
	}
	return out
}

// MarshalJSON encodes m as a JSON object in key order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	raw, err := m.ordered().MarshalJSON()
	if err != nil {
		return nil, err
	}
	// orderedmap terminates every encoded key and value with a newline.
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
