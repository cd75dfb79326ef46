package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster/pkg/exchange"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Write one note as a txt, md or html file",
	Long: `Export writes the note into --out (default: current directory) under a
file name derived from its title. Use --out - to print to stdout instead.`,
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
		f, err := exchange.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		file, err := exchange.Export(n, f)
		if err != nil {
			return err
		}

		if exportOut == "-" {
			_, err := cmd.OutOrStdout().Write(file.Content)
			return err
		}
		path, err := writeExport(exportOut, file.Name, file.Content)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "txt, md or html")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "Target directory, or - for stdout")
}

// writeExport stores content as dir/name and returns the path.
func writeExport(dir, name string, content []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
