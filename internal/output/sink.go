// Package output persists accepted salts. Results are appended to a plain
// text file under an advisory lock so that several miner processes can share
// one results file.
package output

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gofrs/flock"

	"github.com/crunchworks/create2crunch/internal/crunch"
)

// DefaultPath is the results file the original tooling expects.
const DefaultPath = "efficient_addresses.txt"

// FileSink appends one line per result to a file. The mutex serializes the
// process's own workers; the flock guards against other processes appending
// to the same file.
type FileSink struct {
	path string
	lock *flock.Flock

	mu sync.Mutex
	f  *os.File
}

// NewFileSink opens (creating if necessary) the results file for appending.
func NewFileSink(path string) (*FileSink, error) {
	if path == "" {
		path = DefaultPath
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open results file %s: %w", path, err)
	}
	return &FileSink{path: path, lock: flock.New(path), f: f}, nil
}

// Path returns the file results are appended to.
func (s *FileSink) Path() string { return s.path }

// Record appends the result line, holding the file lock for the duration of
// the write.
func (s *FileSink) Record(ctx context.Context, res crunch.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("could not lock results file: %w", err)
	}
	defer s.lock.Unlock()

	if _, err := fmt.Fprintln(s.f, res.String()); err != nil {
		return fmt.Errorf("could not write to results file: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
