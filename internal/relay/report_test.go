package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReport(t *testing.T) {
	r := ParseReport([]byte("CH1: ON\r\nCH2: OFF\r\nCH3: OFF\r\nCH4: on\r\n"))

	assert.Equal(t, []RelayState{
		{Channel: ChannelPower, On: true},
		{Channel: ChannelReserved, On: false},
		{Channel: ChannelMotorA, On: false},
		{Channel: ChannelMotorB, On: true},
	}, r.Relays)
	assert.Equal(t, "CH1: ON\nCH2: OFF\nCH3: OFF\nCH4: on", r.Text())
}

func TestParseReportKeepsFirstMention(t *testing.T) {
	r := ParseReport([]byte("CH2=OFF CH1=ON CH1=OFF"))

	assert.Equal(t, []RelayState{
		{Channel: ChannelPower, On: true},
		{Channel: ChannelReserved, On: false},
	}, r.Relays)

	_, ok := r.Relay(ChannelMotorB)
	assert.False(t, ok)
}

func TestParseReportUnrecognized(t *testing.T) {
	r := ParseReport([]byte{0x01, 'o', 'k', 0x7f, '\n'})

	assert.Empty(t, r.Relays)
	assert.Equal(t, ".ok.", r.Text())
	assert.Equal(t, r.Text(), r.String())
}

func TestParseReportEmpty(t *testing.T) {
	r := ParseReport(nil)
	assert.Empty(t, r.Relays)
	assert.Equal(t, "", r.Text())
}

func TestReportShort(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"all reported", "CH1: ON\r\nCH2: OFF\r\nCH3: OFF\r\nCH4: ON\r\n", "[1001]"},
		{"power off", "CH1: OFF\r\nCH2: OFF\r\nCH3: OFF\r\nCH4: OFF\r\n", "[0000]"},
		{"partial", "CH1=ON", "[1???]"},
		{"unrecognised", "OK\r\n", "OK"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseReport([]byte(tt.raw)).Short())
		})
	}
}
