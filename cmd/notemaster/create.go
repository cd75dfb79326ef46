package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster/pkg/core"
)

var (
	noteTitle    string
	noteContent  string
	noteTags     string
	notePriority string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Long: `Create adds a blank note at the top of the collection.
Any of --title, --content, --tags or --priority is saved into it right away.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		c := app.Store.Create(ctx)
		status := c.Persist

		if anyChanged(cmd, "title", "content", "tags", "priority") {
			in := core.InputFrom(*c.Note)
			if err := applyInputFlags(cmd, &in); err != nil {
				return err
			}
			saved, _ := app.Store.Save(ctx, c.ID, in)
			status = saved.Persist
		}

		reportPersist(cmd, status)
		fmt.Fprintf(cmd.OutOrStdout(), "Note created: %d\n", c.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	addInputFlags(createCmd)
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&noteTitle, "title", "", "Note title")
	cmd.Flags().StringVar(&noteContent, "content", "", `Note content ("-" reads stdin)`)
	cmd.Flags().StringVar(&noteTags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&notePriority, "priority", "", "low, medium or high")
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// applyInputFlags overwrites only the fields whose flag was given.
func applyInputFlags(cmd *cobra.Command, in *core.Input) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		in.Title = noteTitle
	}
	if flags.Changed("content") {
		content, err := readContent(cmd, noteContent)
		if err != nil {
			return err
		}
		in.Content = content
	}
	if flags.Changed("tags") {
		in.Tags = noteTags
	}
	if flags.Changed("priority") {
		in.Priority = notePriority
	}
	return nil
}
