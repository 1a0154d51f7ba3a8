package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/SimonFlower/AkaiAmp/internal/serial"
	"github.com/SimonFlower/AkaiAmp/internal/tui/colors"
	"github.com/SimonFlower/AkaiAmp/internal/tui/styles"
)

type StatusBar struct {
	title    string
	portPath string
	line     serial.Config
	width    int
}

func NewStatusBar(title, portPath string, line serial.Config) *StatusBar {
	return &StatusBar{
		title:    title,
		portPath: portPath,
		line:     line,
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// LineSettings formats the serial settings in "9600 baud 8N1" notation
func (sb *StatusBar) LineSettings() string {
	return fmt.Sprintf("%d baud %d%s%d",
		sb.line.BaudRate,
		sb.line.DataBits,
		sb.line.Parity,
		sb.line.StopBits)
}

// View renders the status bar: state badge, port, indicator, line settings
// and the time of the last status reply.
func (sb *StatusBar) View(status styles.StatusType, lastUpdate string) string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	mode := styles.GetStatusStyle(status).Render(status.String())

	portStyle := lipgloss.NewStyle().
		Foreground(colors.Mauve).
		Bold(true).
		Padding(0, 1)
	port := portStyle.Render(sb.portPath)

	var indicator string
	var indicatorStyle lipgloss.Style
	switch status {
	case styles.StatusError:
		indicatorStyle = lipgloss.NewStyle().Foreground(colors.Red)
		indicator = "✗"
	case styles.StatusBusy, styles.StatusLocked:
		indicatorStyle = lipgloss.NewStyle().Foreground(colors.Yellow)
		indicator = "○"
	default:
		indicatorStyle = lipgloss.NewStyle().Foreground(colors.Green)
		indicator = "●"
	}
	connectionIndicator := indicatorStyle.Render(indicator)

	lineStyle := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1)
	lineDetails := lineStyle.Render("⚡ " + sb.LineSettings())

	if lastUpdate == "" {
		lastUpdate = "--:--:--"
	}
	timeStyle := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1)
	updated := timeStyle.Render(lastUpdate)

	dividerStyle := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Padding(0, 1)
	divider := dividerStyle.Render("│")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, mode, port, connectionIndicator, divider)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, lineDetails, divider, updated)

	spacerWidth := terminalWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	statusBarStyle := lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(terminalWidth)

	content := lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide)
	return statusBarStyle.Render(content)
}

// Title renders the panel header
func (sb *StatusBar) Title() string {
	return styles.TitleStyle.Render(sb.title)
}
