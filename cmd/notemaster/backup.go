package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster/pkg/exchange"
)

var backupOut string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export every note into a JSON bundle",
	Long: `Backup writes all notes, in collection order, into a bundle that
"notemaster import" reads back. Use --out - to print to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		bundle := exchange.NewBundle(app.Store.Notes(), time.Now())
		if backupOut == "-" {
			return exchange.WriteBundle(cmd.OutOrStdout(), bundle)
		}

		path := backupOut
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, exchange.BundleFilename)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		if err := exchange.WriteBundle(f, bundle); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d notes to %s\n", bundle.TotalNotes, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().StringVarP(&backupOut, "out", "o", exchange.BundleFilename, "Bundle file or directory, or - for stdout")
}
