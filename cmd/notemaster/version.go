package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notemaster",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "notemaster version %s\n", notemaster.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
