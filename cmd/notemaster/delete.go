package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long:  `Delete permanently removes a note. It asks for confirmation unless --yes is given.`,
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
		if !deleteYes {
			fmt.Fprintf(out, "Delete %q? This cannot be undone. [y/N] ", n.Title)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(out, "Cancelled")
				return nil
			}
		}

		c, _ := app.Store.Delete(cmd.Context(), n.ID)
		reportPersist(cmd, c.Persist)
		fmt.Fprintf(out, "Note deleted: %d\n", n.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
