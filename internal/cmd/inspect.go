package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHasCmd(a *app) *cobra.Command {
	var wild bool

	cmd := &cobra.Command{
		Use:   "has <file> <key>",
		Short: "Report whether a key exists",
		Long: `Report whether a key exists. Prints true or false; exits with
status 1 when false.

With --wild, only the last segment of the key matters and the whole
file is searched for it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(args[0])
			if err != nil {
				return err
			}

			found := c.Has(args[1], wild)
			fmt.Fprintln(cmd.OutOrStdout(), found)
			if !found {
				return errFalse
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&wild, "wild", "w", false, "Search the whole file for the last key segment")
	return cmd
}

func newPrintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "print <file>",
		Short: "Print the file as re-serialized by configfile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(args[0])
			if err != nil {
				return err
			}

			out, err := c.Stringify()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	var original string

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace a file with its original copy",
		Long: `Replace a file with its original copy.

By default the original of settings.json is settings.original.json in
the same directory; the marker can be changed in the settings file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(args[0])
			if err != nil {
				return err
			}
			return c.RestoreOriginal(original)
		},
	}

	cmd.Flags().StringVar(&original, "original", "", "Original file to restore from")
	return cmd
}
