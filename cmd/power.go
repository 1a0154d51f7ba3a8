/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// powerCmd represents the power command
var powerCmd = &cobra.Command{
	Use:   "power [on|off]",
	Short: "Switch the amplifier on or off",
	Long: `Switch the amplifier's mains relay (relay 1) on or off.

Without a state the amplifier is switched off.

Examples:
  akai-amp power on
  akai-amp power off`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, "power", argAt(args, 0), 0)
	},
}

func init() {
	rootCmd.AddCommand(powerCmd)
}

// argAt returns args[i], or "" when it was not given
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
