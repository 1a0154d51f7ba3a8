/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset [all]",
	Short: "Switch every relay off",
	Long: `Switch relays 1 to 4 off in order, which also powers the amplifier down.

With "all" the volume motor is then run down for timing.reset_seek_units
seconds (10 by default) so the volume ends at its minimum from any position.

Examples:
  akai-amp reset
  akai-amp reset all`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, "reset", argAt(args, 0), 0)
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
