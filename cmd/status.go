/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status [short]",
	Short: "Ask the relay board for its relay states",
	Long: `Send a status request to the relay board and print its reply.

The board answers with one line per relay. The default output is a table of
the relays; "short" prints a single line such as [1000] with one digit per
relay, so the power state is the second character.

Examples:
  akai-amp status
  akai-amp status short`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"short"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, "status", argAt(args, 0), 0)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
