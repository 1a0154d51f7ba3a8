package relay

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// Driver speaks the relay board protocol over an open channel.
//
// Every method blocks until its whole frame sequence has been written,
// including the timed motor pulse. Nothing interrupts a sequence once it
// has started except an I/O error.
type Driver struct {
	ch       io.ReadWriter
	timing   Timing
	clock    clock.Clock
	log      *zap.Logger
	maxReply int
}

// Option configures a Driver.
type Option func(*Driver)

// WithTiming overrides the inter-frame and pulse delays.
func WithTiming(t Timing) Option {
	return func(d *Driver) {
		d.timing = t
	}
}

// WithClock sets the clock used for every delay.
func WithClock(c clock.Clock) Option {
	return func(d *Driver) {
		d.clock = c
	}
}

// WithLogger sets the logger frames are traced to.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) {
		d.log = l
	}
}

// WithMaxReply caps how many bytes Status reads.
func WithMaxReply(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.maxReply = n
		}
	}
}

// NewDriver returns a Driver writing to ch. Reads from ch must return zero
// bytes (or io.EOF) once the channel's read timeout elapses.
func NewDriver(ch io.ReadWriter, opts ...Option) *Driver {
	d := &Driver{
		ch:       ch,
		timing:   DefaultTiming(),
		clock:    clock.New(),
		log:      zap.NewNop(),
		maxReply: MaxReplyBytes,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute runs op. The report is only non-nil for CommandStatus.
func (d *Driver) Execute(op Operation) (*Report, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	d.log.Info("executing operation", zap.Stringer("op", op))

	switch op.Command {
	case CommandPower:
		return nil, d.Power(op.State)
	case CommandVolume:
		return nil, d.Volume(op.State, op.Amount)
	case CommandReset:
		return nil, d.Reset(op.State)
	case CommandStatus:
		return d.Status()
	default:
		return nil, fmt.Errorf("%w: unknown command %d", ErrInvalidArgument, int(op.Command))
	}
}

// Power switches the amplifier relay on or off with a single frame.
func (d *Driver) Power(state State) error {
	switch state {
	case StateOn:
		return d.send(Frame{Channel: ChannelPower, On: true})
	case StateOff:
		return d.send(Frame{Channel: ChannelPower, On: false})
	default:
		return fmt.Errorf("%w: power state must be on or off, got %q", ErrInvalidArgument, state)
	}
}

// Volume runs the volume motor up or down for amount turn units.
func (d *Driver) Volume(direction State, amount int) error {
	if direction != StateUp && direction != StateDown {
		return fmt.Errorf("%w: volume direction must be up or down, got %q", ErrInvalidArgument, direction)
	}
	if amount < MinVolumeAmount || amount > MaxVolumeAmount {
		return fmt.Errorf("%w: volume amount must be %d-%d, got %d",
			ErrInvalidArgument, MinVolumeAmount, MaxVolumeAmount, amount)
	}
	return d.pulse(direction, amount)
}

// Reset switches every relay off in channel order. With StateAll it then
// drives the volume down long enough to reach the end stop from anywhere.
func (d *Driver) Reset(state State) error {
	if state != StateUnset && state != StateAll {
		return fmt.Errorf("%w: reset state must be all or omitted, got %q", ErrInvalidArgument, state)
	}

	var frames []Frame
	for _, ch := range Channels() {
		frames = append(frames, Frame{Channel: ch, On: false})
	}
	if err := d.sequence(frames...); err != nil {
		return err
	}

	if state != StateAll {
		return nil
	}
	d.clock.Sleep(d.timing.IntraCommandDelay)
	return d.pulse(StateDown, d.timing.ResetSeekUnits)
}

// Status asks the board for its relay states and collects the reply until
// the channel goes quiet or the reply cap is reached.
func (d *Driver) Status() (*Report, error) {
	if err := d.write([]byte{statusRequest}, "status request"); err != nil {
		return nil, err
	}

	buf := make([]byte, d.maxReply)
	total := 0
	for total < len(buf) {
		n, err := d.ch.Read(buf[total:])
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading status reply: %w", ErrIO, err)
		}
		if n == 0 {
			break
		}
	}

	d.log.Debug("status reply", zap.Int("bytes", total), zap.ByteString("raw", buf[:total]))
	return ParseReport(buf[:total]), nil
}

// pulse energizes the motor pair in direction, holds for units turn units,
// then de-energizes both legs whichever way it was turning.
func (d *Driver) pulse(direction State, units int) error {
	var energize []Frame
	if direction == StateUp {
		energize = []Frame{{Channel: ChannelMotorA, On: true}, {Channel: ChannelMotorB, On: false}}
	} else {
		energize = []Frame{{Channel: ChannelMotorA, On: false}, {Channel: ChannelMotorB, On: true}}
	}
	if err := d.sequence(energize...); err != nil {
		return err
	}

	hold := d.timing.PulseDuration(units)
	d.log.Debug("motor energized", zap.Stringer("direction", direction), zap.Duration("hold", hold))
	d.clock.Sleep(hold)

	return d.sequence(
		Frame{Channel: ChannelMotorA, On: false},
		Frame{Channel: ChannelMotorB, On: false},
	)
}

// sequence sends frames with the intra-command delay between consecutive ones.
func (d *Driver) sequence(frames ...Frame) error {
	for i, f := range frames {
		if i > 0 {
			d.clock.Sleep(d.timing.IntraCommandDelay)
		}
		if err := d.send(f); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) send(f Frame) error {
	return d.write(f.Bytes(), f.String())
}

func (d *Driver) write(b []byte, what string) error {
	d.log.Debug("sending frame", zap.String("frame", what), zap.String("bytes", hex.EncodeToString(b)))

	n, err := d.ch.Write(b)
	if err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrIO, what, err)
	}
	if n != len(b) {
		return fmt.Errorf("%w: writing %s: %w", ErrIO, what, io.ErrShortWrite)
	}
	return nil
}
