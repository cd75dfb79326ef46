package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster"
	notemcp "github.com/aretw0/notemaster/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the notes as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		return notemcp.NewNoteMasterMCPServer(app.Store, notemaster.Version).Start()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
