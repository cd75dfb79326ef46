package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster/pkg/core"
	"github.com/aretw0/notemaster/pkg/exchange"
)

var (
	showJSON   bool
	showFormat string
	showStats  bool
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a note",
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

		out := cmd.OutOrStdout()
		if showJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(n)
		}

		f, err := exchange.ParseFormat(showFormat)
		if err != nil {
			return err
		}
		file, err := exchange.Export(n, f)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(file.Content))

		if showStats || app.Preferences.Settings().ShowWordCount {
			fmt.Fprintf(out, "\n%d words, %d characters\n",
				core.CountWords(n.Content), core.CountCharacters(n.Content))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "md", "txt, md or html")
	showCmd.Flags().BoolVar(&showStats, "count", false, "Always print word and character counts")
}
