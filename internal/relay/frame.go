package relay

import "fmt"

const (
	frameHeader   byte = 0xa0
	statusRequest byte = 0xff
)

// Channel numbers one of the four relay outputs on the board.
type Channel byte

const (
	ChannelPower    Channel = 1 // amplifier mains
	ChannelReserved Channel = 2
	ChannelMotorA   Channel = 3 // motor drive pair, first leg
	ChannelMotorB   Channel = 4 // motor drive pair, second leg
)

// Channels lists every relay output in board order.
func Channels() []Channel {
	return []Channel{ChannelPower, ChannelReserved, ChannelMotorA, ChannelMotorB}
}

func (c Channel) String() string {
	return fmt.Sprintf("CH%d", byte(c))
}

// Frame switches one relay. On the wire it is four bytes:
// header, channel, value and a checksum over the first three.
type Frame struct {
	Channel Channel
	On      bool
}

func (f Frame) value() byte {
	if f.On {
		return 1
	}
	return 0
}

// Bytes encodes the frame for the wire.
func (f Frame) Bytes() []byte {
	ch, v := byte(f.Channel), f.value()
	return []byte{frameHeader, ch, v, checksum(frameHeader, ch, v)}
}

func (f Frame) String() string {
	if f.On {
		return f.Channel.String() + " on"
	}
	return f.Channel.String() + " off"
}

// checksum is the byte sum truncated to eight bits.
func checksum(b ...byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}
