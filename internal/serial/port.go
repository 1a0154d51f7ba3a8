package serial

// Port represents an open serial line. Reads honor the configured read
// timeout and return zero bytes when it elapses without data.
type Port interface {
	Read(buf []byte) (int, error)
	Write(data []byte) (int, error)
	Close() error
	Drain() error
	FlushInput() error
	Config() Config
}
