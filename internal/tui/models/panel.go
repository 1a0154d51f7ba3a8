package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SimonFlower/AkaiAmp/internal/lock"
	"github.com/SimonFlower/AkaiAmp/internal/relay"
	"github.com/SimonFlower/AkaiAmp/internal/serial"
	"github.com/SimonFlower/AkaiAmp/internal/tui/components"
	"github.com/SimonFlower/AkaiAmp/internal/tui/keys"
	"github.com/SimonFlower/AkaiAmp/internal/tui/styles"
)

// Runner executes one operation against the board, taking the lock itself.
type Runner func(op relay.Operation) (*relay.Report, error)

// OperationDoneMsg carries the outcome of an operation run in the background
type OperationDoneMsg struct {
	Op     relay.Operation
	Report *relay.Report
	Err    error
}

var statusOp = relay.Operation{Command: relay.CommandStatus}

// Panel is the interactive amplifier control panel. It runs at most one
// operation at a time; keys that would start another are ignored until the
// running one finishes.
type Panel struct {
	run        Runner
	keys       keys.PanelKeys
	help       help.Model
	spinner    spinner.Model
	relays     *components.RelayTable
	statusBar  *components.StatusBar
	amount     int
	busy       bool
	running    relay.Operation
	quitting   bool
	status     styles.StatusType
	message    string
	lastUpdate time.Time
	now        func() time.Time
}

func NewPanel(run Runner, portPath string, line serial.Config) *Panel {
	return &Panel{
		run:       run,
		keys:      keys.NewPanelKeys(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
		relays:    components.NewRelayTable(),
		statusBar: components.NewStatusBar("Akai Amp", portPath, line),
		amount:    relay.MinVolumeAmount,
		status:    styles.StatusReady,
		now:       time.Now,
	}
}

// Busy reports whether an operation is running
func (p *Panel) Busy() bool {
	return p.busy
}

// Amount is the volume amount the next volume key uses
func (p *Panel) Amount() int {
	return p.amount
}

// Message is the text of the message line
func (p *Panel) Message() string {
	return p.message
}

// Status is the state shown in the status bar
func (p *Panel) Status() styles.StatusType {
	return p.status
}

// Relays returns the relay table
func (p *Panel) Relays() *components.RelayTable {
	return p.relays
}

// Init requests the relay states once on start
func (p *Panel) Init() tea.Cmd {
	return p.start(statusOp)
}

// start runs op in the background unless another operation is running
func (p *Panel) start(op relay.Operation) tea.Cmd {
	if p.busy {
		return nil
	}
	p.busy = true
	p.running = op
	p.status = styles.StatusBusy
	p.message = op.String()

	run := p.run
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		report, err := run(op)
		return OperationDoneMsg{Op: op, Report: report, Err: err}
	})
}

func (p *Panel) finish(msg OperationDoneMsg) tea.Cmd {
	p.busy = false

	switch {
	case errors.Is(msg.Err, lock.ErrBusy):
		p.status = styles.StatusLocked
		p.message = "Another instance holds the lock, try again shortly"
	case msg.Err != nil:
		p.status = styles.StatusError
		p.message = fmt.Sprintf("%s failed: %v", msg.Op, msg.Err)
	case msg.Op.Command == relay.CommandStatus:
		p.status = styles.StatusReady
		p.relays.SetReport(msg.Report)
		p.lastUpdate = p.now()
		p.message = "Status updated"
	default:
		p.status = styles.StatusReady
		p.message = msg.Op.String() + " done"
	}

	if p.quitting {
		return tea.Quit
	}
	// Refresh the relay table after anything that switched relays
	if msg.Err == nil && msg.Op.Command != relay.CommandStatus {
		return p.start(statusOp)
	}
	return nil
}

func (p *Panel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.statusBar.SetWidth(msg.Width)
		p.help.Width = msg.Width

	case spinner.TickMsg:
		if !p.busy {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case OperationDoneMsg:
		return p, p.finish(msg)

	case tea.KeyMsg:
		return p, p.handleKey(msg)
	}
	return p, nil
}

func (p *Panel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Quit):
		// A running sequence must finish so the motor is not left energized
		if p.busy {
			p.quitting = true
			p.message = "Waiting for " + p.running.String() + " to finish..."
			return nil
		}
		return tea.Quit

	case key.Matches(msg, p.keys.Help):
		p.help.ShowAll = !p.help.ShowAll

	case key.Matches(msg, p.keys.Amount):
		if n, err := strconv.Atoi(msg.String()); err == nil {
			p.amount = n
		}
	}

	if p.busy {
		return nil
	}

	switch {
	case key.Matches(msg, p.keys.PowerOn):
		return p.start(relay.Operation{Command: relay.CommandPower, State: relay.StateOn})
	case key.Matches(msg, p.keys.PowerOff):
		return p.start(relay.Operation{Command: relay.CommandPower, State: relay.StateOff})
	case key.Matches(msg, p.keys.VolumeUp):
		return p.start(relay.Operation{Command: relay.CommandVolume, State: relay.StateUp, Amount: p.amount})
	case key.Matches(msg, p.keys.VolumeDown):
		return p.start(relay.Operation{Command: relay.CommandVolume, State: relay.StateDown, Amount: p.amount})
	case key.Matches(msg, p.keys.Reset):
		return p.start(relay.Operation{Command: relay.CommandReset, State: relay.StateAll})
	case key.Matches(msg, p.keys.Status):
		return p.start(statusOp)
	}
	return nil
}

func (p *Panel) messageLine() string {
	switch {
	case p.busy:
		return p.spinner.View() + " " + p.message
	case p.status == styles.StatusError, p.status == styles.StatusLocked:
		return styles.ErrorStyle.Render("✗ " + p.message)
	case p.message != "":
		return styles.SuccessStyle.Render("✓ " + p.message)
	default:
		return ""
	}
}

func (p *Panel) View() string {
	var lastUpdate string
	if !p.lastUpdate.IsZero() {
		lastUpdate = p.lastUpdate.Format("15:04:05")
	}

	amount := styles.InfoStyle.Render(fmt.Sprintf("Volume amount: %d", p.amount))

	helpView := p.help.View(p.keys)
	if p.help.ShowAll {
		helpView = styles.HelpBoxStyle.Render(helpView)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		p.relays.View(),
		amount,
		p.messageLine(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		p.statusBar.Title(),
		styles.ContentBorderStyle.Render(content),
		helpView,
		p.statusBar.View(p.status, lastUpdate),
	)
}
