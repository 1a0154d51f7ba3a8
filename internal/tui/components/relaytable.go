package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"

	"github.com/SimonFlower/AkaiAmp/internal/relay"
	"github.com/SimonFlower/AkaiAmp/internal/tui/colors"
	"github.com/SimonFlower/AkaiAmp/internal/tui/styles"
)

const (
	columnKeyRelay = "relay"
	columnKeyRole  = "role"
	columnKeyState = "state"
)

// RelayTable shows the relay states from the last status reply
type RelayTable struct {
	report *relay.Report
}

func NewRelayTable() *RelayTable {
	return &RelayTable{}
}

// SetReport replaces the displayed states. A nil report clears them.
func (rt *RelayTable) SetReport(report *relay.Report) {
	rt.report = report
}

// Report returns the displayed report, or nil before the first reply
func (rt *RelayTable) Report() *relay.Report {
	return rt.report
}

// State returns the label shown for ch: ON, OFF or ? when unknown
func (rt *RelayTable) State(ch relay.Channel) string {
	if rt.report == nil {
		return "?"
	}
	on, ok := rt.report.Relay(ch)
	switch {
	case !ok:
		return "?"
	case on:
		return "ON"
	default:
		return "OFF"
	}
}

// RelayRole names what each relay is wired to
func RelayRole(ch relay.Channel) string {
	switch ch {
	case relay.ChannelPower:
		return "Power"
	case relay.ChannelMotorA:
		return "Volume motor (up)"
	case relay.ChannelMotorB:
		return "Volume motor (down)"
	default:
		return "Unused"
	}
}

func stateStyle(state string) lipgloss.Style {
	switch state {
	case "ON":
		return styles.RelayOnStyle
	case "OFF":
		return styles.RelayOffStyle
	default:
		return styles.RelayUnknownStyle
	}
}

func (rt *RelayTable) View() string {
	columns := []table.Column{
		table.NewColumn(columnKeyRelay, "Relay", 7),
		table.NewColumn(columnKeyRole, "Role", 22),
		table.NewColumn(columnKeyState, "State", 7),
	}

	var rows []table.Row
	for _, ch := range relay.Channels() {
		state := rt.State(ch)
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyRelay: ch.String(),
			columnKeyRole:  RelayRole(ch),
			columnKeyState: table.NewStyledCell(state, stateStyle(state)),
		}))
	}

	t := table.New(columns).
		WithRows(rows).
		BorderRounded().
		HeaderStyle(lipgloss.NewStyle().Bold(true).Foreground(colors.Text)).
		WithBaseStyle(lipgloss.NewStyle().
			BorderForeground(colors.Surface2).
			Foreground(colors.Subtext1).
			Align(lipgloss.Left))

	return t.View()
}
