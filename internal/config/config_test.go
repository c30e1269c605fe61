package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvOriginalMarker, "")

	s, err := Load(afero.NewMemMapFs(), "/nope/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvOriginalMarker, "")

	fsys := afero.NewMemMapFs()
	content := "logLevel: debug\npretty: true\nindent: \"    \"\noriginalMarker: orig\nstripComments: true\n"
	require.NoError(t, afero.WriteFile(fsys, "/cfg/config.yaml", []byte(content), 0o644))

	s, err := Load(fsys, "/cfg/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, &Settings{
		LogLevel:       "debug",
		Pretty:         true,
		Indent:         "    ",
		OriginalMarker: "orig",
		StripComments:  true,
	}, s)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvOriginalMarker, "")

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/config.yaml", []byte("pretty: true\n"), 0o644))

	s, err := Load(fsys, "/config.yaml")
	require.NoError(t, err)
	assert.True(t, s.Pretty)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "original", s.OriginalMarker)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvOriginalMarker, "pristine")

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/config.yaml", []byte("logLevel: debug\n"), 0o644))

	s, err := Load(fsys, "/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "error", s.LogLevel)
	assert.Equal(t, "pristine", s.OriginalMarker)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvOriginalMarker, "")

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/bad.yaml", []byte("logLevel: [unclosed\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/empty-marker.yaml", []byte("originalMarker: \"\"\n"), 0o644))

	_, err := Load(fsys, "/bad.yaml")
	assert.Error(t, err)

	_, err = Load(fsys, "/empty-marker.yaml")
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "configfile", "config.yaml"), DefaultPath())
}
