// Package docstore persists the structured project document as a single
// size-limited JSON slot on disk.
//
// The slot mirrors the capacity-limited key-value storage the project
// document originally lived in: every save fully overwrites the previous
// snapshot, and a document larger than the configured capacity is
// rejected with ErrCapacityExceeded, which callers must surface to the
// user rather than swallow. Writes go through a temp file and rename so
// the slot is never observed half-written.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// DefaultMaxBytes mirrors the ~5 MiB quota of the original storage slot.
const DefaultMaxBytes = 5 << 20

var (
	// ErrCapacityExceeded is returned when a document does not fit the
	// slot. The in-memory state remains authoritative for the session;
	// persistence is simply not guaranteed until the document shrinks.
	ErrCapacityExceeded = errors.New("document exceeds storage capacity")

	errEmptyDocument = errors.New("document cannot be empty")
)

// Store is a single-document JSON slot.
type Store struct {
	path     string
	maxBytes int64
	mu       sync.Mutex
}

// New returns a Store backed by the file at path. maxBytes <= 0 selects
// DefaultMaxBytes.
func New(path string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{path: path, maxBytes: maxBytes}
}

// Path returns the slot's file path.
func (s *Store) Path() string {
	return s.path
}

// Save fully overwrites the slot with doc.
func (s *Store) Save(doc []byte) error {
	if len(doc) == 0 {
		return errEmptyDocument
	}
	if int64(len(doc)) > s.maxBytes {
		return fmt.Errorf("%w (%d > %d bytes)", ErrCapacityExceeded, len(doc), s.maxBytes)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create document directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(doc); err != nil {
		_ = f.Close()
		return errors.Join(fmt.Errorf("failed to write document: %w", err), os.Remove(tmp))
	}
	if err := f.Close(); err != nil {
		return errors.Join(fmt.Errorf("failed to close document: %w", err), os.Remove(tmp))
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Join(fmt.Errorf("failed to finalize document: %w", err), os.Remove(tmp))
	}
	return nil
}

// Load returns the stored document, or ok=false if the slot is empty.
func (s *Store) Load() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read document: %w", err)
	}
	return data, true, nil
}

// Watch invokes onChange whenever the slot file is written by another
// process, until ctx is done. The watcher runs on its own goroutine;
// Watch returns once it is installed.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: saves rename a temp file over the slot, which
	// would drop a watch installed on the file itself.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch document directory: %w", err)
	}
	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Name != s.path {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					onChange()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("Error watching document", "path", s.path, "err", err)
			}
		}
	}()
	return nil
}
