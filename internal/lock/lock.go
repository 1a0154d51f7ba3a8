// Package lock provides the host-wide mutual exclusion that keeps two
// invocations from driving the relay board at the same time.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// ErrBusy is returned by a non-waiting Acquire while another process holds the lock.
var ErrBusy = errors.New("another instance of this application currently holds the lock")

// DefaultFileName is the lock file created in the user's home directory.
const DefaultFileName = ".akai_amp.lock"

// DefaultPath returns the per-user lock file path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Lock is a held lock. Release it exactly once; the operating system drops
// it anyway if the process dies.
type Lock struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// Acquire takes the exclusive lock at path, creating the file if needed.
// With wait false it fails immediately with ErrBusy when the lock is held;
// with wait true it blocks until the lock is free, without a timeout.
func Acquire(path string, wait bool) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file %s: %w", path, err)
	}

	if err := lockFile(file, wait); err != nil {
		file.Close()
		return nil, err
	}

	l := &Lock{file: file, path: path}
	l.writeOwner()
	return l, nil
}

// writeOwner records the holder's PID for anyone inspecting the file.
// It is informational only, so failures are ignored.
func (l *Lock) writeOwner() {
	if err := l.file.Truncate(0); err != nil {
		return
	}
	l.file.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and closes the lock file. Calling it again is a no-op.
func (l *Lock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	err := unlockFile(l.file)
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return err
}
