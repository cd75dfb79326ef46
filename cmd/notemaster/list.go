package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster/pkg/core"
)

var (
	listJSON   bool
	listFilter string
	listSearch string
	listSort   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, filtered, searched and sorted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		app.Store.SetFilter(listFilter)
		app.Store.SetSearch(listSearch)
		app.Store.SetSort(core.ParseSortKey(listSort))
		notes := app.Store.View()

		out := cmd.OutOrStdout()
		if listJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(notes)
		}

		if len(notes) == 0 {
			fmt.Fprintln(out, "No notes found")
			return nil
		}

		now := time.Now()
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPRI\tTITLE\tTAGS\tUPDATED")
		for _, n := range notes {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				n.ID, core.PriorityIcon(n.Priority), n.Title,
				strings.Join(n.Tags, ", "), core.RelativeDate(n.UpdatedAt, now))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listFilter, "tag", core.FilterAll, "Only notes with this tag")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive text in title, content or tags")
	listCmd.Flags().StringVar(&listSort, "sort", string(core.SortUpdated), "updated, created or title")
}
