package resolve

import "github.com/thirteen37/configfile/value"

// Exists reports whether segments name an entry under root.
//
// With wild set, only the last segment matters: the whole tree is searched
// depth-first, in insertion order, for any mapping holding that key.
// Mappings inside sequences are searched as well.
func Exists(root *value.Mapping, segments []string, wild bool) bool {
	if root == nil || validate(segments) != nil {
		return false
	}
	if !wild {
		_, _, err := locate(root, segments)
		return err == nil
	}
	return search(value.Map(root), segments[len(segments)-1])
}

func search(v value.Value, key string) bool {
	switch v.Kind() {
	case value.KindMapping:
		m, _ := v.AsMapping()
		if m.Has(key) {
			return true
		}
		for _, k := range m.Keys() {
			child, _ := m.Get(k)
			if search(child, key) {
				return true
			}
		}
	case value.KindSequence:
		items, _ := v.AsSequence()
		for _, item := range items {
			if search(item, key) {
				return true
			}
		}
	}
	return false
}
