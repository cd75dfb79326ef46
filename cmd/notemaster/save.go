package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster/pkg/core"
)

var saveCmd = &cobra.Command{
	Use:   "save [id]",
	Short: "Update the fields of a note",
	Long: `Save rewrites the note with the given flags. Fields without a flag keep
their current value. Tags are comma-separated; an unknown priority becomes medium.`,
	Args: cobra.ExactArgs(1),
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

		in := core.InputFrom(n)
		if err := applyInputFlags(cmd, &in); err != nil {
			return err
		}
		c, _ := app.Store.Save(cmd.Context(), n.ID, in)

		reportPersist(cmd, c.Persist)
		fmt.Fprintf(cmd.OutOrStdout(), "Note saved: %d %s\n", c.ID, c.Note.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	addInputFlags(saveCmd)
}

func readContent(cmd *cobra.Command, value string) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read content from stdin: %w", err)
	}
	return string(data), nil
}
