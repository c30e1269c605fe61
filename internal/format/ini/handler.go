// Package ini provides the INI format handler.
package ini

import (
	"bytes"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/thirteen37/configfile/internal/format"
	"github.com/thirteen37/configfile/internal/resolve"
	"github.com/thirteen37/configfile/value"
)

// Handler implements format.Handler for INI files.
//
// Tree structure: {"global": "value", "section": {"key": "value"}}.
// Keys outside any section are top-level scalars; sections are top-level
// mappings. Every parsed value is a value.Scalar.
type Handler struct{}

// New creates a new INI handler.
func New() *Handler {
	return &Handler{}
}

// Parse reads INI bytes and returns the root mapping.
// Section and key order from the file are preserved.
func (h *Handler) Parse(data []byte, opts format.ParseOptions) (*value.Mapping, error) {
	if err := format.CheckParseOptions(format.INI, opts); err != nil {
		return nil, err
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return nil, format.ParseError(format.INI, err)
	}

	root := value.NewMapping()
	for _, section := range cfg.Sections() {
		// ini.v1 keeps keys that precede any section header in "DEFAULT"
		if section.Name() == ini.DefaultSection {
			for _, key := range section.Keys() {
				root.Set(key.Name(), value.Scalar(key.Value()))
			}
			continue
		}

		sectionMap := value.NewMapping()
		for _, key := range section.Keys() {
			sectionMap.Set(key.Name(), value.Scalar(key.Value()))
		}
		root.Set(section.Name(), value.Map(sectionMap))
	}

	return root, nil
}

// Serialize writes the tree to INI bytes.
// Values nested deeper than section.key, and sequences, are written as JSON
// text. Top-level scalars are written before the first section.
func (h *Handler) Serialize(tree *value.Mapping, opts format.SerializeOptions) ([]byte, error) {
	cfg := ini.Empty()
	global := cfg.Section(ini.DefaultSection)

	for _, name := range tree.Keys() {
		entry, _ := tree.Get(name)

		sectionMap, ok := entry.AsMapping()
		if !ok {
			if _, err := global.NewKey(name, entry.Text()); err != nil {
				return nil, fmt.Errorf("failed to create key %q: %w", name, err)
			}
			continue
		}

		section, err := cfg.NewSection(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create section %q: %w", name, err)
		}
		for _, keyName := range sectionMap.Keys() {
			keyVal, _ := sectionMap.Get(keyName)
			if _, err := section.NewKey(keyName, keyVal.Text()); err != nil {
				return nil, fmt.Errorf("failed to create key %q in section %q: %w", keyName, name, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize INI: %w", err)
	}

	return buf.Bytes(), nil
}

// Limit reports that INI paths address at most section.key.
func (h *Handler) Limit() resolve.Limit {
	return resolve.TwoLevel
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
