package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thirteen37/configfile"
	"github.com/thirteen37/configfile/internal/format/yaml"
	"github.com/thirteen37/configfile/value"
)

func newGetCmd(a *app) *cobra.Command {
	var (
		parseTypes bool
		returnType string
		def        string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "get <file> <key>",
		Short: "Print the value of a key",
		Long: `Print the value of a key.

Sections print as JSON unless --output yaml is given.

Example:
  configfile get settings.ini server.port --type int
  configfile get app.yaml database --parse-types --output json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(args[0])
			if err != nil {
				return err
			}

			var opts []configfile.GetOption
			if parseTypes {
				opts = append(opts, configfile.ParseTypes())
			}
			if returnType != "" {
				kind, err := value.ParseKind(returnType)
				if err != nil {
					return err
				}
				opts = append(opts, configfile.ReturnType(kind))
			}
			if cmd.Flags().Changed("default") {
				opts = append(opts, configfile.Default(value.Scalar(def)))
			}

			v, err := c.Get(args[1], opts...)
			if err != nil {
				return err
			}
			return writeValue(cmd.OutOrStdout(), v, output)
		},
	}

	cmd.Flags().BoolVar(&parseTypes, "parse-types", false, "Convert text to booleans, numbers, lists and maps")
	cmd.Flags().StringVar(&returnType, "type", "", "Cast the result: string, int, float, bool, list or map")
	cmd.Flags().StringVar(&def, "default", "", "Value printed when the key is missing")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	return cmd
}

// writeValue prints v as text, JSON or YAML.
func writeValue(w io.Writer, v value.Value, output string) error {
	switch output {
	case "text", "":
		_, err := fmt.Fprintln(w, v.String())
		return err
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.MarshalValue(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
