package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster/pkg/core"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read or change editor settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Print all settings, or one by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		values := settingValues(app.Preferences.Settings())
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			for _, name := range core.SettingNames {
				if strings.EqualFold(name, args[0]) {
					fmt.Fprintln(out, values[name])
					return nil
				}
			}
			return fmt.Errorf("%w: unknown setting %q", core.ErrInvalidSetting, args[0])
		}
		for _, name := range core.SettingNames {
			fmt.Fprintf(out, "%s=%s\n", name, values[name])
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [name] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		status, err := app.Preferences.Set(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		reportPersist(cmd, status)
		fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
}

func settingValues(s core.Settings) map[string]string {
	return map[string]string{
		"autoSaveInterval": fmt.Sprint(s.AutoSaveInterval),
		"fontSize":         s.FontSize,
		"wordWrap":         fmt.Sprint(s.WordWrap),
		"showWordCount":    fmt.Sprint(s.ShowWordCount),
	}
}
