package relay

import "errors"

var (
	// ErrInvalidArgument is returned for a command, state or amount outside
	// the accepted set. It is raised before any frame is sent.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIO wraps a read or write failure part way through a sequence. The
	// relays are left in whatever state the frames already sent produced.
	ErrIO = errors.New("relay board I/O failure")
)
