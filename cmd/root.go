/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SimonFlower/AkaiAmp/internal/amp"
	"github.com/SimonFlower/AkaiAmp/internal/config"
	"github.com/SimonFlower/AkaiAmp/internal/lock"
	"github.com/SimonFlower/AkaiAmp/internal/logging"
	"github.com/SimonFlower/AkaiAmp/internal/relay"
)

// Process exit codes
const (
	ExitOK       = 0
	ExitError    = 1
	ExitLockBusy = 2
)

// runner executes one operation against the board
type runner interface {
	Run(op relay.Operation) (*relay.Report, error)
}

// newRunner builds the runner used by every board command. Tests replace it.
var newRunner = func(cfg config.Config, log *zap.Logger) runner {
	return amp.NewSession(cfg, amp.WithLogger(log))
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "akai-amp",
	Short: "Control an amplifier's power and volume through a USB relay board",
	Long: `Control an amplifier's power and volume through a four channel USB relay board.

Relay 1 switches the amplifier's mains power. Relays 3 and 4 drive the volume
motor up or down for a whole number of seconds. Only one instance talks to the
board at a time; a second instance exits with status 2 unless --wait_for_lock
is given.

Examples:
  akai-amp power on
  akai-amp volume up 2
  akai-amp reset all
  akai-amp status short
  akai-amp --serial_port /dev/ttyUSB1 power off`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}
	printError(rootCmd.ErrOrStderr(), err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, lock.ErrBusy):
		return ExitLockBusy
	default:
		return ExitError
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("wait_for_lock", false, "Wait for the lock to be available rather than exiting with an error")
	rootCmd.PersistentFlags().String("serial_port", "", "The serial port to use (\"auto\" picks the first port found)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/akai-amp/config.yaml)")
	rootCmd.PersistentFlags().String("log_level", "", "Log level: debug, info, warn, error")
}

// setup loads the configuration for cmd and builds its logger
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

// runOperation validates the request, runs it on the board and prints the result
func runOperation(cmd *cobra.Command, command, state string, amount int) error {
	op, err := relay.NewOperation(command, state, amount)
	if err != nil {
		return err
	}

	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	report, err := newRunner(cfg, log).Run(op)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), op, report)
	return nil
}
