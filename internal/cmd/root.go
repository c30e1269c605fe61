// Package cmd provides the CLI commands for configfile.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thirteen37/configfile"
	"github.com/thirteen37/configfile/internal/config"
	"github.com/thirteen37/configfile/internal/format"
	"github.com/thirteen37/configfile/internal/logging"
)

// errFalse makes the process exit with status 1 without printing an error.
var errFalse = errors.New("false")

// app carries state shared by all subcommands.
type app struct {
	fs         afero.Fs
	configPath string
	logLevel   string
	format     string
	settings   *config.Settings
}

// NewRootCmd builds the command tree operating on fsys.
func NewRootCmd(fsys afero.Fs) *cobra.Command {
	a := &app{fs: fsys}

	rootCmd := &cobra.Command{
		Use:   "configfile",
		Short: "Read and edit JSON, INI, YAML, TOML and properties files",
		Long: `configfile reads and edits configuration files through dotted keys.

Keys address nested sections: "server.tls.port". Escape a literal dot
inside a section name as "\.", or pass the key as a JSON array:
'["example.com", "port"]'.

INI files address at most section.key. Deeper keys store the remaining
path as a JSON value under section.key.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Settings file (default $XDG_CONFIG_HOME/configfile/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error or off")
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "", "File format, overriding the extension (json, ini, yaml, toml, properties)")

	rootCmd.AddCommand(
		newGetCmd(a),
		newSetCmd(a),
		newDeleteCmd(a),
		newHasCmd(a),
		newPrintCmd(a),
		newRestoreCmd(a),
	)
	return rootCmd
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	if err := NewRootCmd(afero.NewOsFs()).Execute(); err != nil {
		if !errors.Is(err, errFalse) {
			fmt.Fprintf(os.Stderr, "configfile: %v\n", err)
		}
		return 1
	}
	return 0
}

// setup loads settings and configures logging before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	settings, err := config.Load(a.fs, path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		settings.LogLevel = a.logLevel
	}
	a.settings = settings

	logging.Init(logging.Config{
		Level:  logging.ParseLevel(settings.LogLevel),
		Output: cmd.ErrOrStderr(),
		Pretty: settings.Pretty,
	})
	return nil
}

// open loads the file at path with the current settings.
func (a *app) open(path string) (*configfile.ConfigFile, error) {
	opts := []configfile.Option{
		configfile.WithFS(a.fs),
		configfile.WithLogger(logging.Component("configfile")),
		configfile.WithOriginalMarker(a.settings.OriginalMarker),
		configfile.WithIndent(a.settings.Indent),
	}
	if a.settings.StripComments {
		opts = append(opts, configfile.WithStripComments())
	}
	if a.format != "" {
		f, err := format.ParseFormat(a.format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, configfile.WithFormat(f))
	}
	return configfile.New(path, opts...)
}
