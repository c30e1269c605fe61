package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thirteen37/configfile"
	"github.com/thirteen37/configfile/value"
)

func newSetCmd(a *app) *cobra.Command {
	var (
		parseTypes bool
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "set <file> <key> <value>",
		Short: "Set the value of a key",
		Long: `Set the value of a key, creating missing sections.

Values are stored as text unless --parse-types is given, which turns
true/false, numbers and JSON lists or maps into typed values.

Example:
  configfile set app.json server.port 8080 --parse-types
  configfile set app.toml plugins '["a", "b"]' --parse-types --dry-run`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := value.Scalar(args[2])
			if parseTypes {
				v = value.Coerce(v)
			}
			return a.edit(cmd, args[0], dryRun, func(c *configfile.ConfigFile) error {
				return c.Set(args[1], v)
			})
		},
	}

	cmd.Flags().BoolVar(&parseTypes, "parse-types", false, "Convert the value to a boolean, number, list or map")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print a diff instead of saving")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "delete <file> <key>",
		Short: "Delete a key or section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, args[0], dryRun, func(c *configfile.ConfigFile) error {
				return c.Delete(args[1])
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print a diff instead of saving")
	return cmd
}

// edit applies change to the file at path and saves it, or prints the
// resulting diff when dryRun is set.
func (a *app) edit(cmd *cobra.Command, path string, dryRun bool, change func(*configfile.ConfigFile) error) error {
	c, err := a.open(path)
	if err != nil {
		return err
	}

	before, err := c.Stringify()
	if err != nil {
		return err
	}
	if err := change(c); err != nil {
		return err
	}

	if !dryRun {
		return c.Save()
	}

	after, err := c.Stringify()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), lineDiff(c.FilePath(), before, after))
	return err
}
