package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster"
	"github.com/aretw0/notemaster/pkg/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		// Settings edited by another process show up live.
		if err := app.Watch(cmd.Context()); err != nil && !errors.Is(err, notemaster.ErrNotWatchable) {
			app.Logger().Warn("settings watcher unavailable", "error", err)
		}
		return tui.Run(cmd.Context(), app.Store, app.Preferences)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
