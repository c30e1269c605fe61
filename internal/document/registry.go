package document

import (
	"fmt"

	"github.com/thirteen37/configfile/internal/format"
	"github.com/thirteen37/configfile/internal/format/ini"
	"github.com/thirteen37/configfile/internal/format/json"
	"github.com/thirteen37/configfile/internal/format/properties"
	"github.com/thirteen37/configfile/internal/format/toml"
	"github.com/thirteen37/configfile/internal/format/yaml"
)

// registry maps each supported format to its handler constructor.
var registry = map[format.Format]func() format.Handler{
	format.JSON:       func() format.Handler { return json.New() },
	format.INI:        func() format.Handler { return ini.New() },
	format.YAML:       func() format.Handler { return yaml.New() },
	format.TOML:       func() format.Handler { return toml.New() },
	format.Properties: func() format.Handler { return properties.New() },
}

// HandlerFor returns the handler for f.
func HandlerFor(f format.Format) (format.Handler, error) {
	newHandler, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", format.ErrUnsupportedFormat, f)
	}
	return newHandler(), nil
}
