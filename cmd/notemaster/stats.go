package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print collection statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		s := app.Store.Stats()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total notes:   %d\n", s.TotalNotes)
		fmt.Fprintf(out, "Total words:   %d\n", s.TotalWords)
		fmt.Fprintf(out, "Tags:          %d\n", s.TotalTags)
		fmt.Fprintf(out, "Created today: %d\n", s.CreatedToday)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
