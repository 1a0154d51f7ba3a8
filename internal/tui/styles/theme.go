package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/SimonFlower/AkaiAmp/internal/tui/colors"
)

var (
	// Header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	// Content area styles
	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colors.Surface1)

	// Relay states
	RelayOnStyle = lipgloss.NewStyle().
			Foreground(colors.RelayOn).
			Bold(true)

	RelayOffStyle = lipgloss.NewStyle().
			Foreground(colors.RelayOff)

	RelayUnknownStyle = lipgloss.NewStyle().
				Foreground(colors.RelayUnknown)

	// Message line styles
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Red)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Green)

	InfoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(colors.Peach)

	HelpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Surface2).
			Padding(0, 1)
)

// StatusType is the panel state shown in the status bar
type StatusType int

const (
	StatusReady StatusType = iota
	StatusBusy
	StatusLocked
	StatusError
)

func (s StatusType) String() string {
	switch s {
	case StatusReady:
		return "READY"
	case StatusBusy:
		return "BUSY"
	case StatusLocked:
		return "LOCKED"
	case StatusError:
		return "ERROR"
	default:
		return "READY"
	}
}

// GetStatusStyle returns the status bar badge style for status
func GetStatusStyle(status StatusType) lipgloss.Style {
	badge := lipgloss.NewStyle().
		Foreground(colors.Base).
		Bold(true).
		Padding(0, 1)

	switch status {
	case StatusBusy:
		return badge.Background(colors.Peach)
	case StatusLocked:
		return badge.Background(colors.Yellow)
	case StatusError:
		return badge.Background(colors.Red)
	default:
		return badge.Background(colors.Blue)
	}
}
