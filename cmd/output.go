/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SimonFlower/AkaiAmp/internal/relay"
	"github.com/SimonFlower/AkaiAmp/internal/tui/components"
)

// Styled output
var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("240"))

	cellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("✗"), err)
}

// printResult reports a finished operation. Status prints the board reply.
func printResult(w io.Writer, op relay.Operation, report *relay.Report) {
	if op.Command != relay.CommandStatus {
		fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), op)
		return
	}

	if report == nil {
		report = relay.ParseReport(nil)
	}
	if op.State == relay.StateShort {
		fmt.Fprintln(w, report.Short())
		return
	}

	if len(report.Relays) == 0 {
		if len(report.Raw) == 0 {
			fmt.Fprintf(w, "%s No reply from the relay board\n", infoStyle.Render("⚡"))
			return
		}
		fmt.Fprintln(w, report.Text())
		return
	}
	renderRelays(w, report)
}

// renderRelays renders the relay states in a styled static table format
func renderRelays(w io.Writer, report *relay.Report) {
	relayWidth := 8
	roleWidth := 22
	stateWidth := 6

	header := fmt.Sprintf("%-*s %-*s %-*s",
		relayWidth, "Relay",
		roleWidth, "Role",
		stateWidth, "State")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, ch := range relay.Channels() {
		state := "?"
		if on, ok := report.Relay(ch); ok {
			state = "OFF"
			if on {
				state = "ON"
			}
		}
		row := fmt.Sprintf("%-*s %-*s %-*s",
			relayWidth, ch,
			roleWidth, components.RelayRole(ch),
			stateWidth, state)
		fmt.Fprintln(w, cellStyle.Render(strings.TrimRight(row, " ")))
	}
}
