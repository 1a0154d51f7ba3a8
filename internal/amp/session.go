// Package amp runs one relay operation end to end: it resolves the serial
// port, takes the host lock, opens the line, drives the board and releases
// everything again on every exit path.
package amp

import (
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/SimonFlower/AkaiAmp/internal/config"
	"github.com/SimonFlower/AkaiAmp/internal/lock"
	"github.com/SimonFlower/AkaiAmp/internal/relay"
	"github.com/SimonFlower/AkaiAmp/internal/serial"
)

// ErrSerialOpen is returned when the relay board's serial port cannot be opened.
var ErrSerialOpen = errors.New("failed to open serial port")

// Opener opens a serial port. serial.Open is the production implementation.
type Opener func(device string, opts ...serial.Option) (serial.Port, error)

// PortFinder picks a port when none is configured.
type PortFinder func() (string, error)

// Session executes operations against one configured board.
type Session struct {
	cfg   config.Config
	open  Opener
	find  PortFinder
	clock clock.Clock
	log   *zap.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithOpener replaces the serial port opener.
func WithOpener(o Opener) SessionOption {
	return func(s *Session) {
		s.open = o
	}
}

// WithPortFinder replaces serial port discovery.
func WithPortFinder(f PortFinder) SessionOption {
	return func(s *Session) {
		s.find = f
	}
}

// WithClock sets the clock the relay driver sleeps on.
func WithClock(c clock.Clock) SessionOption {
	return func(s *Session) {
		s.clock = c
	}
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		s.log = l
	}
}

// NewSession returns a Session for cfg.
func NewSession(cfg config.Config, opts ...SessionOption) *Session {
	s := &Session{
		cfg:   cfg,
		open:  serial.Open,
		find:  serial.FirstPort,
		clock: clock.New(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes op while holding the lock. The report is only set for status.
// Errors from closing the port and releasing the lock are combined with the
// operation's own error.
func (s *Session) Run(op relay.Operation) (report *relay.Report, err error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	held, err := lock.Acquire(s.cfg.Lock.File, s.cfg.Lock.Wait)
	if err != nil {
		return nil, err
	}
	s.log.Info("lock acquired", zap.String("path", held.Path()))
	defer multierr.AppendInvoke(&err, multierr.Invoke(func() error {
		s.log.Info("lock released", zap.String("path", held.Path()))
		return held.Release()
	}))

	device, err := s.resolvePort()
	if err != nil {
		return nil, err
	}

	opts, err := s.cfg.SerialOptions()
	if err != nil {
		return nil, err
	}
	port, err := s.open(device, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrSerialOpen, device, err)
	}
	s.log.Info("port opened", zap.String("port", device))
	defer multierr.AppendInvoke(&err, multierr.Invoke(func() error {
		s.log.Info("port closed", zap.String("port", device))
		return port.Close()
	}))

	// Stale bytes would be mistaken for the status reply
	if ferr := port.FlushInput(); ferr != nil {
		s.log.Warn("failed to flush input", zap.Error(ferr))
	}

	driver := relay.NewDriver(port,
		relay.WithTiming(s.cfg.Timing.Relay()),
		relay.WithClock(s.clock),
		relay.WithLogger(s.log),
	)
	report, err = driver.Execute(op)
	if err != nil {
		return nil, err
	}

	if err := port.Drain(); err != nil {
		return report, fmt.Errorf("%w: draining output: %w", relay.ErrIO, err)
	}
	return report, nil
}

func (s *Session) resolvePort() (string, error) {
	if !s.cfg.Serial.AutoDetect() {
		return s.cfg.Serial.Port, nil
	}
	device, err := s.find()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerialOpen, err)
	}
	s.log.Info("discovered serial port", zap.String("port", device))
	return device, nil
}
