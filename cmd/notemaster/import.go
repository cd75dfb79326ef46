package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster/pkg/exchange"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Add the notes of a backup bundle",
	Long: `Import prepends every note of the bundle to the collection. Notes are
not de-duplicated; ids that clash with existing notes are replaced.
Use - to read the bundle from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("%w: %v", exchange.ErrUnreadable, err)
			}
			defer f.Close()
			r = f
		}

		notes, err := exchange.ReadBundle(r)
		if err != nil {
			return err
		}

		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		c := app.Store.Import(cmd.Context(), notes)
		reportPersist(cmd, c.Persist)
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d notes\n", c.Count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
