// Package json provides the JSON/JSONC format handler.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iancoleman/orderedmap"
	"github.com/tidwall/jsonc"

	"github.com/thirteen37/configfile/internal/format"
	"github.com/thirteen37/configfile/internal/resolve"
	"github.com/thirteen37/configfile/value"
)

// Handler implements format.Handler for JSON/JSONC files.
type Handler struct{}

// New creates a new JSON handler.
func New() *Handler {
	return &Handler{}
}

// StripComments removes // and /* */ comments and trailing commas from JSONC.
func StripComments(data []byte) []byte {
	return jsonc.ToJSON(data)
}

// Parse reads JSON bytes and returns the root object.
// Key order is preserved. Integral numbers become value.Int.
func (h *Handler) Parse(data []byte, opts format.ParseOptions) (*value.Mapping, error) {
	if opts.StripComments {
		data = StripComments(data)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, format.ParseError(format.JSON, errors.New("top-level value must be an object"))
	}

	om := orderedmap.New()
	if err := om.UnmarshalJSON(trimmed); err != nil {
		return nil, format.ParseError(format.JSON, err)
	}

	root, err := value.FromDecodedJSON(om)
	if err != nil {
		return nil, format.ParseError(format.JSON, err)
	}
	m, _ := root.AsMapping()
	return m, nil
}

// Serialize writes the tree to formatted JSON bytes.
func (h *Handler) Serialize(tree *value.Mapping, opts format.SerializeOptions) ([]byte, error) {
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	// Encode adds the trailing newline
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("failed to serialize JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Limit reports that JSON objects nest without limit.
func (h *Handler) Limit() resolve.Limit {
	return resolve.Unlimited
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
