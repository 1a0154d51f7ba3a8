package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SimonFlower/AkaiAmp/internal/relay"
	"github.com/SimonFlower/AkaiAmp/internal/serial"
	"github.com/SimonFlower/AkaiAmp/internal/tui/styles"
)

func TestRelayTableStates(t *testing.T) {
	rt := NewRelayTable()
	assert.Equal(t, "?", rt.State(relay.ChannelPower))

	rt.SetReport(relay.ParseReport([]byte("CH1: ON\r\nCH3: OFF\r\n")))
	assert.Equal(t, "ON", rt.State(relay.ChannelPower))
	assert.Equal(t, "?", rt.State(relay.ChannelReserved))
	assert.Equal(t, "OFF", rt.State(relay.ChannelMotorA))

	view := rt.View()
	for _, want := range []string{"Relay", "CH1", "CH4", "Power", "Volume motor (down)", "ON", "OFF"} {
		assert.Contains(t, view, want)
	}
}

func TestRelayRole(t *testing.T) {
	assert.Equal(t, "Power", RelayRole(relay.ChannelPower))
	assert.Equal(t, "Unused", RelayRole(relay.ChannelReserved))
	assert.Equal(t, "Volume motor (up)", RelayRole(relay.ChannelMotorA))
}

func TestStatusBar(t *testing.T) {
	line := serial.DefaultConfig()
	line.Parity = serial.ParityEven
	sb := NewStatusBar("Akai Amp", "/dev/ttyUSB0", line)
	sb.SetWidth(100)

	assert.Equal(t, "9600 baud 8E1", sb.LineSettings())

	view := sb.View(styles.StatusBusy, "")
	assert.Contains(t, view, "BUSY")
	assert.Contains(t, view, "/dev/ttyUSB0")
	assert.Contains(t, view, "--:--:--")
	assert.False(t, strings.Contains(view, "\n"), "single line")

	assert.Contains(t, sb.View(styles.StatusReady, "12:00:00"), "12:00:00")
	assert.Contains(t, sb.Title(), "Akai Amp")
}
