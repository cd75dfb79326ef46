package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster/pkg/exchange"
)

var printOut string

var printCmd = &cobra.Command{
	Use:   "print [id]",
	Short: "Render a note as a printable HTML page",
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
		page, err := exchange.Print(n)
		if err != nil {
			return err
		}

		if printOut == "" {
			fmt.Fprint(cmd.OutOrStdout(), page)
			return nil
		}
		path, err := writeExport(printOut, exchange.SanitizeFilename(n.Title)+".html", []byte(page))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Printable page: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().StringVarP(&printOut, "out", "o", "", "Write the page into this directory instead of stdout")
}
