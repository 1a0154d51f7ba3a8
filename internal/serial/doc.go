// Package serial opens and configures the serial line to the relay board.
//
// On Linux the port is driven directly through termios using golang.org/x/sys/unix;
// other platforms fall back to github.com/tarm/serial.
//
// # Basic Usage
//
// Open a port with the relay board defaults (9600 8N1, no flow control):
//
//	port, err := serial.Open("/dev/ttyUSB0")
//	if err != nil {
//	    return err
//	}
//	defer port.Close()
//
// Use functional options for anything else:
//
//	port, err := serial.Open("/dev/ttyUSB0",
//	    serial.WithBaudRate(9600),
//	    serial.WithParity(serial.ParityEven),
//	    serial.WithReadTimeout(500*time.Millisecond),
//	)
//
// # Read Timeout
//
// Reads return as soon as data is available, or with zero bytes once the read
// timeout elapses without any data. Replies from the board carry no length or
// delimiter, so callers read until a read comes back empty.
//
// # Port Discovery
//
//	ports, err := serial.ListPorts()
//	first, err := serial.FirstPort()
//
// # Default Configuration
//
//   - BaudRate: 9600
//   - DataBits: 8
//   - StopBits: 1
//   - Parity: None
//   - ReadTimeout: 500ms
//   - WriteMode: Buffered
package serial
