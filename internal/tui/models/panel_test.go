package models

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimonFlower/AkaiAmp/internal/lock"
	"github.com/SimonFlower/AkaiAmp/internal/relay"
	"github.com/SimonFlower/AkaiAmp/internal/serial"
	"github.com/SimonFlower/AkaiAmp/internal/tui/styles"
)

type fakeRunner struct {
	ops    []relay.Operation
	report *relay.Report
	err    error
}

func (f *fakeRunner) Run(op relay.Operation) (*relay.Report, error) {
	f.ops = append(f.ops, op)
	if op.Command == relay.CommandStatus {
		return f.report, f.err
	}
	return nil, f.err
}

func newTestPanel() (*Panel, *fakeRunner) {
	runner := &fakeRunner{report: relay.ParseReport([]byte("CH1: ON\r\nCH2: OFF\r\nCH3: OFF\r\nCH4: OFF\r\n"))}
	p := NewPanel(runner.Run, "/dev/ttyUSB0", serial.DefaultConfig())
	p.now = func() time.Time { return time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC) }
	return p, runner
}

// collect runs cmd and any batched commands it produces, returning the messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func doneMsg(t *testing.T, msgs []tea.Msg) OperationDoneMsg {
	t.Helper()
	for _, msg := range msgs {
		if done, ok := msg.(OperationDoneMsg); ok {
			return done
		}
	}
	t.Fatalf("no OperationDoneMsg in %v", msgs)
	return OperationDoneMsg{}
}

func isQuit(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func press(p *Panel, s string) tea.Cmd {
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

// settle feeds finished operations back into p until nothing is running.
func settle(t *testing.T, p *Panel, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var all []tea.Msg
	for cmd != nil {
		msgs := collect(cmd)
		all = append(all, msgs...)
		cmd = nil
		for _, msg := range msgs {
			if done, ok := msg.(OperationDoneMsg); ok {
				_, cmd = p.Update(done)
			}
		}
	}
	return all
}

func TestPanelRequestsStatusOnStart(t *testing.T) {
	p, runner := newTestPanel()

	cmd := p.Init()
	assert.True(t, p.Busy())

	done := doneMsg(t, collect(cmd))
	require.Len(t, runner.ops, 1)
	assert.Equal(t, relay.CommandStatus, runner.ops[0].Command)

	p.Update(done)
	assert.False(t, p.Busy())
	assert.Equal(t, styles.StatusReady, p.Status())
	assert.Equal(t, "ON", p.Relays().State(relay.ChannelPower))
	assert.Equal(t, "OFF", p.Relays().State(relay.ChannelMotorA))
	assert.Contains(t, p.View(), "15:04:05")
}

func TestPanelIgnoresActionsWhileBusy(t *testing.T) {
	p, runner := newTestPanel()
	initCmd := p.Init()
	require.True(t, p.Busy())

	for _, k := range []string{"o", "f", "+", "-", "r", "s"} {
		assert.Nil(t, press(p, k), "key %q while busy", k)
	}

	settle(t, p, initCmd)
	assert.Len(t, runner.ops, 1, "only the initial status request ran")
}

func TestPanelAmountSelectableWhileBusy(t *testing.T) {
	p, _ := newTestPanel()
	p.Init()

	press(p, "3")
	assert.Equal(t, 3, p.Amount())
}

func TestPanelVolumeUsesSelectedAmount(t *testing.T) {
	p, runner := newTestPanel()

	press(p, "2")
	cmd := press(p, "+")
	require.NotNil(t, cmd)
	settle(t, p, cmd)

	require.Len(t, runner.ops, 2)
	assert.Equal(t, relay.Operation{Command: relay.CommandVolume, State: relay.StateUp, Amount: 2}, runner.ops[0])
	assert.Equal(t, relay.CommandStatus, runner.ops[1].Command, "relay table refreshed afterwards")
	assert.False(t, p.Busy())
}

func TestPanelKeyBindings(t *testing.T) {
	tests := []struct {
		key  string
		want relay.Operation
	}{
		{"o", relay.Operation{Command: relay.CommandPower, State: relay.StateOn}},
		{"f", relay.Operation{Command: relay.CommandPower, State: relay.StateOff}},
		{"k", relay.Operation{Command: relay.CommandVolume, State: relay.StateUp, Amount: 1}},
		{"j", relay.Operation{Command: relay.CommandVolume, State: relay.StateDown, Amount: 1}},
		{"-", relay.Operation{Command: relay.CommandVolume, State: relay.StateDown, Amount: 1}},
		{"r", relay.Operation{Command: relay.CommandReset, State: relay.StateAll}},
		{"s", relay.Operation{Command: relay.CommandStatus}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			p, runner := newTestPanel()
			settle(t, p, press(p, tt.key))
			require.NotEmpty(t, runner.ops)
			assert.Equal(t, tt.want, runner.ops[0])
			assert.NoError(t, tt.want.Validate())
		})
	}
}

func TestPanelShowsBusyLock(t *testing.T) {
	p, runner := newTestPanel()
	runner.err = lock.ErrBusy

	settle(t, p, press(p, "o"))

	assert.Len(t, runner.ops, 1, "no refresh after a failure")
	assert.Equal(t, styles.StatusLocked, p.Status())
	assert.Contains(t, p.Message(), "Another instance holds the lock")
	assert.Contains(t, p.View(), "Another instance holds the lock")
}

func TestPanelShowsError(t *testing.T) {
	p, runner := newTestPanel()
	runner.err = errors.New("cable pulled")

	settle(t, p, press(p, "s"))

	assert.Equal(t, styles.StatusError, p.Status())
	assert.Contains(t, p.Message(), "cable pulled")
	assert.Nil(t, p.Relays().Report())
}

func TestPanelQuit(t *testing.T) {
	p, _ := newTestPanel()
	assert.True(t, isQuit(collect(press(p, "q"))))
}

func TestPanelQuitWaitsForRunningOperation(t *testing.T) {
	p, _ := newTestPanel()
	initCmd := p.Init()

	assert.Nil(t, press(p, "q"))
	assert.Contains(t, p.Message(), "Waiting for status")

	msgs := settle(t, p, initCmd)
	assert.True(t, isQuit(msgs), "quits once the status request finished")
	assert.False(t, p.Busy())
}

func TestPanelHelpToggle(t *testing.T) {
	p, _ := newTestPanel()
	short := p.View()

	press(p, "?")
	full := p.View()

	assert.NotEqual(t, short, full)
	assert.Contains(t, full, "refresh status")
}
