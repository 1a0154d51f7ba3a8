//go:build !linux

package serial

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	tarm "github.com/tarm/serial"
)

// tarmPort adapts github.com/tarm/serial to the Port interface on
// platforms without the termios backend.
type tarmPort struct {
	mu     sync.Mutex
	p      *tarm.Port
	config Config
	closed bool
}

var _ Port = (*tarmPort)(nil)

func tarmParity(p Parity) tarm.Parity {
	switch p {
	case ParityOdd:
		return tarm.ParityOdd
	case ParityEven:
		return tarm.ParityEven
	case ParityMark:
		return tarm.ParityMark
	case ParitySpace:
		return tarm.ParitySpace
	default:
		return tarm.ParityNone
	}
}

// Open opens a serial port with the given device path and options
func Open(device string, opts ...Option) (Port, error) {
	config, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	stopBits := tarm.Stop1
	if config.StopBits == 2 {
		stopBits = tarm.Stop2
	}

	p, err := tarm.OpenPort(&tarm.Config{
		Name:        device,
		Baud:        config.BaudRate,
		ReadTimeout: config.ReadTimeout,
		Size:        byte(config.DataBits),
		Parity:      tarmParity(config.Parity),
		StopBits:    stopBits,
	})
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to open %s: %w", device, ErrDeviceNotFound)
		case errors.Is(err, fs.ErrPermission):
			return nil, fmt.Errorf("failed to open %s: %w", device, ErrPermissionDenied)
		}
		return nil, fmt.Errorf("failed to open %s: %w", device, err)
	}

	return &tarmPort{p: p, config: config}, nil
}

func (t *tarmPort) Config() Config {
	return t.config
}

func (t *tarmPort) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrPortClosed
	}
	t.closed = true
	return t.p.Close()
}

// Read maps the io.EOF tarm reports on a read timeout to an empty read.
func (t *tarmPort) Read(buf []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, ErrPortClosed
	}

	n, err := t.p.Read(buf)
	if errors.Is(err, io.EOF) {
		return n, nil
	}
	return n, err
}

func (t *tarmPort) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, ErrPortClosed
	}
	return t.p.Write(data)
}

// Drain is a no-op: tarm/serial has no tcdrain equivalent.
func (t *tarmPort) Drain() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrPortClosed
	}
	return nil
}

func (t *tarmPort) FlushInput() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrPortClosed
	}
	return t.p.Flush()
}
