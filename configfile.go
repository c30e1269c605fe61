// Package configfile reads, edits and writes JSON, INI, YAML, TOML and
// properties files through dotted keys such as "server.tls.port".
//
// Each format keeps its own structural rules. INI addresses at most
// section.key; deeper writes store the remaining path as a nested value
// under section.key. Literal dots inside a key segment are escaped as "\.".
//
// A ConfigFile is not safe for concurrent use.
package configfile

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/thirteen37/configfile/internal/document"
	"github.com/thirteen37/configfile/internal/format"
	"github.com/thirteen37/configfile/value"
)

// ConfigFile is a parsed configuration file.
type ConfigFile struct {
	path   string // empty for in-memory configs
	opts   options
	doc    *document.Document
	logger zerolog.Logger
}

// New reads and parses the file at path. The format is taken from the
// extension unless WithFormat is given.
func New(path string, opts ...Option) (*ConfigFile, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	if _, err := checkFile(o.fs, p); err != nil {
		return nil, err
	}

	if o.format == FormatUnknown {
		if o.format, err = detectFormat(p); err != nil {
			return nil, err
		}
	}
	if o.format == FormatJSON && filepath.Ext(p) == ".jsonc" {
		o.stripComments = true
	}

	raw, err := afero.ReadFile(o.fs, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}

	c, err := newConfigFile(p, raw, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	c.logger.Debug().Int("bytes", len(raw)).Msg("loaded config file")
	return c, nil
}

// Parse builds a ConfigFile from raw contents with no backing file.
// Save and RestoreOriginal fail with ErrNoFile.
func Parse(raw []byte, f Format, opts ...Option) (*ConfigFile, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.format = f
	return newConfigFile("", raw, o)
}

func newConfigFile(p string, raw []byte, o options) (*ConfigFile, error) {
	doc, err := document.New(o.format, raw, document.Options{
		Parse:     format.ParseOptions{StripComments: o.stripComments},
		Serialize: format.SerializeOptions{Indent: o.indent},
	})
	if err != nil {
		return nil, err
	}

	logger := o.logger.With().Str("format", o.format.String()).Logger()
	if p != "" {
		logger = logger.With().Str("path", p).Logger()
	}

	return &ConfigFile{path: p, opts: o, doc: doc, logger: logger}, nil
}

// FilePath returns the path of the backing file, or "" for parsed configs.
func (c *ConfigFile) FilePath() string {
	return c.path
}

// OriginalFilePath returns the default location of the original file,
// name.original.ext next to the backing file.
func (c *ConfigFile) OriginalFilePath() string {
	if c.path == "" {
		return ""
	}
	return originalPath(c.path, c.opts.originalMarker)
}

// Format returns the file's format.
func (c *ConfigFile) Format() Format {
	return c.doc.Format()
}

// Get returns the value at key.
//
// With Default, a missing key yields the default instead of ErrKeyNotFound.
// ParseTypes then coerces text into typed values, and ReturnType casts the
// result, failing with ErrCast.
func (c *ConfigFile) Get(key string, opts ...GetOption) (value.Value, error) {
	var o getOptions
	for _, opt := range opts {
		opt(&o)
	}

	v, err := c.doc.Get(key)
	if err != nil {
		if !o.hasDefault || !errors.Is(err, ErrKeyNotFound) {
			return value.Value{}, err
		}
		v = o.def
	}

	if o.parseTypes {
		v = value.Coerce(v)
	}
	if o.hasReturnType {
		if v, err = value.Cast(v, o.returnType); err != nil {
			return value.Value{}, fmt.Errorf("%s: %w", key, err)
		}
	}
	return v, nil
}

// GetString returns the value at key as text.
func (c *ConfigFile) GetString(key string, opts ...GetOption) (string, error) {
	v, err := c.Get(key, append(opts, ReturnType(value.KindScalar))...)
	if err != nil {
		return "", err
	}
	s, _ := v.AsScalar()
	return s, nil
}

// GetInt returns the value at key as an integer.
func (c *ConfigFile) GetInt(key string, opts ...GetOption) (int64, error) {
	v, err := c.Get(key, append(opts, ReturnType(value.KindInt))...)
	if err != nil {
		return 0, err
	}
	i, _ := v.AsInt()
	return i, nil
}

// GetFloat returns the value at key as a float.
func (c *ConfigFile) GetFloat(key string, opts ...GetOption) (float64, error) {
	v, err := c.Get(key, append(opts, ReturnType(value.KindFloat))...)
	if err != nil {
		return 0, err
	}
	f, _ := v.AsFloat()
	return f, nil
}

// GetBool returns the value at key as a boolean.
func (c *ConfigFile) GetBool(key string, opts ...GetOption) (bool, error) {
	v, err := c.Get(key, append(opts, ReturnType(value.KindBool))...)
	if err != nil {
		return false, err
	}
	b, _ := v.AsBool()
	return b, nil
}

// Set stores v at key, creating missing sections.
func (c *ConfigFile) Set(key string, v value.Value) error {
	return c.doc.Set(key, v)
}

// Delete removes key. Parent sections are kept even when emptied.
func (c *ConfigFile) Delete(key string) error {
	return c.doc.Delete(key)
}

// Has reports whether key exists. With wild set, the last segment of key is
// searched for anywhere in the file.
func (c *ConfigFile) Has(key string, wild bool) bool {
	return c.doc.Has(key, wild)
}

// Stringify returns the current contents in the file's format.
func (c *ConfigFile) Stringify() (string, error) {
	return c.doc.Stringify()
}

// Save overwrites the backing file with Stringify's output, keeping its
// permissions.
func (c *ConfigFile) Save() error {
	if c.path == "" {
		return ErrNoFile
	}

	out, err := c.Stringify()
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", c.path, err)
	}

	if err := afero.WriteFile(c.opts.fs, c.path, []byte(out), fileMode(c.opts.fs, c.path)); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.path, err)
	}

	c.logger.Debug().Int("bytes", len(out)).Msg("saved config file")
	return nil
}

// RestoreOriginal replaces the backing file with the original file and
// reloads it. An empty original means OriginalFilePath.
func (c *ConfigFile) RestoreOriginal(original string) error {
	if c.path == "" {
		return ErrNoFile
	}

	src := c.OriginalFilePath()
	if original != "" {
		var err error
		if src, err = expandPath(original); err != nil {
			return err
		}
	}

	if _, err := checkFile(c.opts.fs, src); err != nil {
		return fmt.Errorf("original file: %w", err)
	}
	if sameFile(c.opts.fs, src, c.path) {
		return fmt.Errorf("%w: %s", ErrSameFile, src)
	}

	data, err := afero.ReadFile(c.opts.fs, src)
	if err != nil {
		return fmt.Errorf("failed to read original %s: %w", src, err)
	}

	mode := fileMode(c.opts.fs, c.path)
	if err := c.opts.fs.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", c.path, err)
	}
	if err := afero.WriteFile(c.opts.fs, c.path, data, mode); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, c.path, err)
	}

	if err := c.doc.Reset(data); err != nil {
		return fmt.Errorf("%s: %w", c.path, err)
	}

	c.logger.Debug().Str("original", src).Msg("restored original file")
	return nil
}
