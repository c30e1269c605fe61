package configfile

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/thirteen37/configfile/internal/format"
	"github.com/thirteen37/configfile/value"
)

// Format identifies a configuration file format.
type Format = format.Format

// Supported formats.
const (
	FormatUnknown    = format.Unknown
	FormatJSON       = format.JSON
	FormatINI        = format.INI
	FormatYAML       = format.YAML
	FormatTOML       = format.TOML
	FormatProperties = format.Properties
)

// DefaultOriginalMarker is the marker in name.original.ext.
const DefaultOriginalMarker = "original"

type options struct {
	fs             afero.Fs
	logger         zerolog.Logger
	format         Format
	stripComments  bool
	indent         string
	originalMarker string
}

func defaultOptions() options {
	return options{
		fs:             afero.NewOsFs(),
		logger:         zerolog.Nop(),
		originalMarker: DefaultOriginalMarker,
	}
}

// Option configures a ConfigFile.
type Option func(*options)

// WithFS sets the file system used for reading, saving and restoring.
func WithFS(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFormat skips extension detection.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithStripComments strips // and /* */ comments from JSON before parsing.
// Files with a .jsonc extension are always stripped.
func WithStripComments() Option {
	return func(o *options) { o.stripComments = true }
}

// WithIndent sets the indentation used by Stringify for JSON and YAML.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// WithOriginalMarker changes the marker used to name the original file.
func WithOriginalMarker(marker string) Option {
	return func(o *options) {
		if marker != "" {
			o.originalMarker = marker
		}
	}
}

type getOptions struct {
	parseTypes    bool
	returnType    value.Kind
	hasReturnType bool
	def           value.Value
	hasDefault    bool
}

// GetOption configures a single Get call.
type GetOption func(*getOptions)

// ParseTypes coerces text in the result into booleans, numbers, lists and
// maps, recursively.
func ParseTypes() GetOption {
	return func(o *getOptions) { o.parseTypes = true }
}

// ReturnType casts the result to kind.
func ReturnType(kind value.Kind) GetOption {
	return func(o *getOptions) {
		o.returnType = kind
		o.hasReturnType = true
	}
}

// Default is returned in place of ErrKeyNotFound. Any value is a valid
// default, including value.Null().
func Default(v value.Value) GetOption {
	return func(o *getOptions) {
		o.def = v
		o.hasDefault = true
	}
}
