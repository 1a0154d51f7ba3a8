/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SimonFlower/AkaiAmp/internal/config"
	"github.com/SimonFlower/AkaiAmp/internal/logging"
	"github.com/SimonFlower/AkaiAmp/internal/serial"
	"github.com/SimonFlower/AkaiAmp/internal/tui/models"
)

// panelCmd represents the panel command
var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Control the amplifier from an interactive panel",
	Long: `Open an interactive panel showing the relay states with keys for every
operation:

  o / f      power on / off
  + / -      volume up / down (also k / j)
  1 2 3      volume amount used by the next volume key
  r          reset all
  s          refresh the relay states
  ?          help
  q          quit

Each key runs one operation and takes the lock for its duration only, so
other instances can use the board between key presses. The panel never waits
for the lock; a busy lock is shown in the status line instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path, cmd.Flags())
		if err != nil {
			return err
		}
		cfg.Lock.Wait = false

		// The panel owns the terminal, so only the log file sees entries
		log, err := logging.NewTo(cfg.Log, io.Discard)
		if err != nil {
			return err
		}
		defer log.Sync()

		line, err := lineConfig(cfg)
		if err != nil {
			return err
		}

		portLabel := cfg.Serial.Port
		if cfg.Serial.AutoDetect() {
			portLabel = config.AutoPort
		}

		panel := models.NewPanel(newRunner(cfg, log).Run, portLabel, line)
		if _, err := tea.NewProgram(panel, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("running panel: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(panelCmd)
}

// lineConfig resolves the serial settings shown in the panel's status bar
func lineConfig(cfg config.Config) (serial.Config, error) {
	line := serial.DefaultConfig()
	opts, err := cfg.SerialOptions()
	if err != nil {
		return line, err
	}
	for _, opt := range opts {
		if err := opt(&line); err != nil {
			return line, fmt.Errorf("%w: %w", config.ErrInvalid, err)
		}
	}
	return line, nil
}
