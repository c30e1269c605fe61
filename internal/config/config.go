// Package config provides settings handling for the configfile command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the settings file.
const (
	EnvLogLevel       = "CONFIGFILE_LOG_LEVEL"
	EnvOriginalMarker = "CONFIGFILE_ORIGINAL_MARKER"
)

// Settings represents the configfile settings file.
type Settings struct {
	// LogLevel is one of debug, info, warn, error or off.
	LogLevel string `yaml:"logLevel"`

	// Pretty enables human-readable log output.
	Pretty bool `yaml:"pretty,omitempty"`

	// Indent is used when writing JSON and YAML files.
	Indent string `yaml:"indent,omitempty"`

	// OriginalMarker names the sibling backup file: name.<marker>.ext.
	OriginalMarker string `yaml:"originalMarker"`

	// StripComments enables JSONC comment stripping when reading JSON.
	StripComments bool `yaml:"stripComments,omitempty"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		LogLevel:       "warn",
		OriginalMarker: "original",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/configfile/config.yaml, falling back
// to the user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "configfile", "config.yaml")
}

// Load reads Settings from filename on fsys. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(fsys afero.Fs, filename string) (*Settings, error) {
	s := Default()

	if filename != "" {
		data, err := afero.ReadFile(fsys, filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		default:
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("failed to parse settings file %s: %w", filename, err)
			}
		}
	}

	applyEnvOverrides(s)

	if s.OriginalMarker == "" {
		return nil, fmt.Errorf("settings: originalMarker must not be empty")
	}
	return s, nil
}

func applyEnvOverrides(s *Settings) {
	if level := os.Getenv(EnvLogLevel); level != "" {
		s.LogLevel = level
	}
	if marker := os.Getenv(EnvOriginalMarker); marker != "" {
		s.OriginalMarker = marker
	}
}
