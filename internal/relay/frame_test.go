package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameBytes(t *testing.T) {
	tests := []struct {
		frame Frame
		want  []byte
	}{
		{Frame{Channel: ChannelPower, On: true}, []byte{0xa0, 0x01, 0x01, 0xa2}},
		{Frame{Channel: ChannelPower, On: false}, []byte{0xa0, 0x01, 0x00, 0xa1}},
		{Frame{Channel: ChannelReserved, On: false}, []byte{0xa0, 0x02, 0x00, 0xa2}},
		{Frame{Channel: ChannelMotorA, On: true}, []byte{0xa0, 0x03, 0x01, 0xa4}},
		{Frame{Channel: ChannelMotorA, On: false}, []byte{0xa0, 0x03, 0x00, 0xa3}},
		{Frame{Channel: ChannelMotorB, On: true}, []byte{0xa0, 0x04, 0x01, 0xa5}},
		{Frame{Channel: ChannelMotorB, On: false}, []byte{0xa0, 0x04, 0x00, 0xa4}},
	}

	for _, tt := range tests {
		t.Run(tt.frame.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.frame.Bytes())
		})
	}
}

func TestFrameChecksumIsByteSum(t *testing.T) {
	for _, ch := range Channels() {
		for _, state := range []bool{false, true} {
			b := Frame{Channel: ch, On: state}.Bytes()
			assert.Equal(t, byte((int(b[0])+int(b[1])+int(b[2]))%256), b[3])
		}
	}
}

func TestChecksumWraps(t *testing.T) {
	assert.Equal(t, byte(0x01), checksum(0xa0, 0x60, 0x01))
}

func TestFrameString(t *testing.T) {
	assert.Equal(t, "CH3 on", Frame{Channel: ChannelMotorA, On: true}.String())
	assert.Equal(t, "CH1 off", Frame{Channel: ChannelPower}.String())
}
