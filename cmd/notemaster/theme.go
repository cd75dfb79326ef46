package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster/pkg/core"
)

var themeCmd = &cobra.Command{
	Use:   "theme [dark|light|toggle]",
	Short: "Print or change the colour theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, app.Preferences.Theme())
			return nil
		}

		ctx := cmd.Context()
		var theme core.Theme
		var status core.PersistStatus
		if args[0] == "toggle" {
			theme, status = app.Preferences.ToggleTheme(ctx)
		} else {
			theme, err = core.ParseTheme(args[0])
			if err != nil {
				return err
			}
			status = app.Preferences.SetTheme(ctx, theme)
		}
		reportPersist(cmd, status)
		fmt.Fprintln(out, theme)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
