// Package toml provides the TOML format handler.
package toml

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/thirteen37/configfile/internal/format"
	"github.com/thirteen37/configfile/internal/resolve"
	"github.com/thirteen37/configfile/value"
)

// Handler implements format.Handler for TOML files.
type Handler struct{}

// New creates a new TOML handler.
func New() *Handler {
	return &Handler{}
}

// Parse reads TOML bytes and returns the root table.
// Key order from the original TOML document is preserved. Date and time
// values become value.DateTime text and are written back as literals.
func (h *Handler) Parse(data []byte, opts format.ParseOptions) (*value.Mapping, error) {
	if err := format.CheckParseOptions(format.TOML, opts); err != nil {
		return nil, err
	}

	// Decode into a generic map to get values
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, format.ParseError(format.TOML, err)
	}

	// Convert using metadata for key order
	return convertTable(raw, meta, nil), nil
}

// convertTable recursively converts a decoded table into a value.Mapping,
// using TOML metadata to preserve key order.
func convertTable(m map[string]any, meta toml.MetaData, prefix []string) *value.Mapping {
	result := value.NewMapping()
	for _, k := range getKeysInOrder(meta, prefix, m) {
		childPrefix := append(append([]string(nil), prefix...), k)
		result.Set(k, convertValue(m[k], meta, childPrefix))
	}
	return result
}

func convertValue(v any, meta toml.MetaData, prefix []string) value.Value {
	switch val := v.(type) {
	case map[string]any:
		return value.Map(convertTable(val, meta, prefix))
	case []map[string]any:
		// Array of tables; elements share the key prefix in metadata
		items := make([]value.Value, len(val))
		for i, item := range val {
			items[i] = value.Map(convertTable(item, meta, prefix))
		}
		return value.Sequence(items...)
	case []any:
		items := make([]value.Value, len(val))
		for i, item := range val {
			items[i] = convertValue(item, meta, prefix)
		}
		return value.Sequence(items...)
	case string:
		return value.Scalar(val)
	case int64:
		return value.Int(val)
	case float64:
		return value.Float(val)
	case bool:
		return value.Bool(val)
	case time.Time:
		return value.DateTime(formatTime(val))
	default:
		return value.Scalar(fmt.Sprint(val))
	}
}

// formatTime renders decoded date/time values in their TOML form. The decoder
// marks local values with dedicated time zones.
func formatTime(t time.Time) string {
	switch t.Location().String() {
	case "date-local":
		return t.Format("2006-01-02")
	case "time-local":
		return t.Format("15:04:05.999999999")
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	default:
		return t.Format(time.RFC3339Nano)
	}
}

// getKeysInOrder returns map keys in document order using TOML metadata.
func getKeysInOrder(meta toml.MetaData, prefix []string, m map[string]any) []string {
	// Build a set of keys we need to find
	needed := make(map[string]bool, len(m))
	for k := range m {
		needed[k] = true
	}

	// Get keys in order from metadata
	var ordered []string
	seen := make(map[string]bool, len(m))
	for _, key := range meta.Keys() {
		// Check if this key matches our prefix + one more segment
		if len(key) == len(prefix)+1 && matchesPrefix(key, prefix) {
			k := key[len(prefix)]
			if needed[k] && !seen[k] {
				ordered = append(ordered, k)
				seen[k] = true
			}
		}
	}

	// Keys missing from metadata go last, sorted for stable output
	var rest []string
	for k := range needed {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	return append(ordered, rest...)
}

// matchesPrefix checks if key starts with prefix.
func matchesPrefix(key toml.Key, prefix []string) bool {
	if len(key) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if key[i] != p {
			return false
		}
	}
	return true
}

// Serialize writes the tree to TOML bytes in tree order.
// BurntSushi's encoder sorts map keys, so tables are emitted here and only
// individual key/value lines go through the encoder.
func (h *Handler) Serialize(tree *value.Mapping, opts format.SerializeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTable(&buf, nil, tree); err != nil {
		return nil, fmt.Errorf("failed to serialize TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTable writes the plain keys of m, then its sub-tables and arrays of
// tables. Plain keys must precede any header, or TOML would assign them to
// the last table opened.
func writeTable(buf *bytes.Buffer, prefix []string, m *value.Mapping) error {
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		if isTable(v) || isTableArray(v) {
			continue
		}
		if err := writeKeyValue(buf, k, v); err != nil {
			return err
		}
	}

	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		header := append(append([]string(nil), prefix...), k)

		switch {
		case isTable(v):
			sub, _ := v.AsMapping()
			writeHeader(buf, "["+joinHeader(header)+"]")
			if err := writeTable(buf, header, sub); err != nil {
				return err
			}
		case isTableArray(v):
			items, _ := v.AsSequence()
			for _, item := range items {
				sub, _ := item.AsMapping()
				writeHeader(buf, "[["+joinHeader(header)+"]]")
				if err := writeTable(buf, header, sub); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func writeHeader(buf *bytes.Buffer, header string) {
	if buf.Len() > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString(header)
	buf.WriteByte('\n')
}

func writeKeyValue(buf *bytes.Buffer, key string, v value.Value) error {
	native, err := toNative(v)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	if err := toml.NewEncoder(buf).Encode(map[string]any{key: native}); err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	return nil
}

// toNative converts a value for BurntSushi's encoder. Mappings only reach
// here inside arrays, where they become inline tables.
func toNative(v value.Value) (any, error) {
	switch v.Kind() {
	case value.KindNull:
		return nil, fmt.Errorf("TOML has no null value")
	case value.KindSequence:
		items, _ := v.AsSequence()
		out := make([]any, len(items))
		for i, item := range items {
			n, err := toNative(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case value.KindMapping:
		m, _ := v.AsMapping()
		out := make(map[string]any, m.Len())
		for _, k := range m.Keys() {
			item, _ := m.Get(k)
			n, err := toNative(item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		if v.IsDateTime() {
			s, _ := v.AsScalar()
			return literal(s), nil
		}
		return v.Native(), nil
	}
}

// literal is written by the encoder as-is, without quotes.
type literal string

func (l literal) MarshalTOML() ([]byte, error) {
	return []byte(l), nil
}

func isTable(v value.Value) bool {
	return v.Kind() == value.KindMapping
}

// isTableArray reports whether v is a non-empty sequence of mappings.
func isTableArray(v value.Value) bool {
	items, ok := v.AsSequence()
	if !ok || len(items) == 0 {
		return false
	}
	for _, item := range items {
		if !isTable(item) {
			return false
		}
	}
	return true
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func joinHeader(keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = quoteKey(k)
	}
	return strings.Join(parts, ".")
}

// quoteKey returns k as a bare key when possible, otherwise as a basic string.
func quoteKey(k string) string {
	if bareKey.MatchString(k) {
		return k
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range k {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Limit reports that TOML tables nest without limit.
func (h *Handler) Limit() resolve.Limit {
	return resolve.Unlimited
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
