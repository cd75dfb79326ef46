package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var duplicateCmd = &cobra.Command{
	Use:   "duplicate [id]",
	Short: "Copy a note under a new id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		n, err := lookup(app, args[0])
		if err != nil {
			return err
		}

		c, _ := app.Store.Duplicate(cmd.Context(), n.ID)
		reportPersist(cmd, c.Persist)
		fmt.Fprintf(cmd.OutOrStdout(), "Note duplicated: %d %s\n", c.ID, c.Note.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(duplicateCmd)
}
