/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/SimonFlower/AkaiAmp/internal/relay"
)

// volumeCmd represents the volume command
var volumeCmd = &cobra.Command{
	Use:   "volume <up|down> [1|2|3]",
	Short: "Turn the volume up or down",
	Long: `Run the volume motor up or down for the given amount.

Each unit of amount runs the motor for one second (timing.volume_turn_unit).
The amount defaults to 1 and must be between 1 and 3.

Examples:
  akai-amp volume up
  akai-amp volume down 3`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(argAt(args, 1))
		if err != nil {
			return err
		}
		return runOperation(cmd, "volume", args[0], amount)
	},
}

func init() {
	rootCmd.AddCommand(volumeCmd)
}

// parseAmount parses the optional volume amount; "" means the default
func parseAmount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	amount, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: amount must be a number, got %q", relay.ErrInvalidArgument, s)
	}
	if amount < relay.MinVolumeAmount || amount > relay.MaxVolumeAmount {
		return 0, fmt.Errorf("%w: volume amount must be %d-%d, got %d",
			relay.ErrInvalidArgument, relay.MinVolumeAmount, relay.MaxVolumeAmount, amount)
	}
	return amount, nil
}
