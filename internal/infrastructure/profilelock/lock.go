// Package profilelock guards a Chromium profile directory so that two
// shells never drive the same user data dir.
package profilelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const lockFileName = "bilishell.lock"

// ErrLocked is returned when another process holds the profile.
var ErrLocked = errors.New("profile is in use by another bilishell")

// Lock is an advisory lock on a profile directory.
type Lock struct {
	path string
	file *os.File
}

// Acquire creates dir if needed and takes an exclusive, non-blocking lock on it.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}

	path := filepath.Join(dir, lockFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	_ = f.Truncate(0)
	_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())

	return &Lock{path: path, file: f}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string { return l.path }

// Release drops the lock. Safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	unlockErr := unlockFile(f)
	return errors.Join(unlockErr, f.Close())
}
