// Package blobstore stores binary image payloads keyed by image id,
// separate from the structured project document.
//
// Payloads are opaque binary-as-text encodings; the store never inspects
// them. The directory-backed implementation writes through a temp file
// and rename so a crashed write never leaves a torn payload behind. Ids
// are arbitrary strings (legacy documents carry ids this codebase did not
// generate), so filenames are the base32 hex encoding of the id, which is
// ASCII-sorted and filesystem-safe.
package blobstore

import (
	"encoding/base32"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/models"
)

var errEmptyID = errors.New("blob id cannot be empty")

// base32Enc is base32 "Extended Hex" without padding: sortable and safe
// as a filename on case-insensitive filesystems.
var base32Enc = base32.HexEncoding.WithPadding(base32.NoPadding)

const blobSuffix = ".blob"

// Store is the narrow capability interface for image payload storage.
// Operations against the same id are observed in issuing order; operations
// against different ids need not serialize with each other.
type Store interface {
	// Put writes the payload under id, replacing any previous payload.
	Put(id, payload string) error
	// Get returns the payload for id, or ok=false if absent.
	Get(id string) (payload string, ok bool, err error)
	// Delete removes the payload for id. Deleting an absent id is not an
	// error: cascade cleanup is best-effort and may race earlier deletes.
	Delete(id string) error
	// GetAll returns every stored blob.
	GetAll() ([]models.ImageBlob, error)
	// Clear removes every stored blob.
	Clear() error
	// PutAll writes every given blob, replacing existing payloads.
	PutAll(blobs []models.ImageBlob) error
}

// DirStore is the directory-backed Store.
type DirStore struct {
	dir string
	mu  sync.RWMutex
}

var _ Store = (*DirStore)(nil)

// Open returns a DirStore rooted at dir, creating it if needed.
func Open(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &DirStore{dir: dir}, nil
}

var (
	defaultOnce  sync.Once
	defaultStore *DirStore
	defaultErr   error
)

// OpenDefault opens the process-wide store handle exactly once; later
// calls return the handle from the first call regardless of dir.
func OpenDefault(dir string) (*DirStore, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = Open(dir)
	})
	return defaultStore, defaultErr
}

func (s *DirStore) pathFor(id string) string {
	return filepath.Join(s.dir, base32Enc.EncodeToString([]byte(id))+blobSuffix)
}

// Put implements Store.
func (s *DirStore) Put(id, payload string) error {
	if id == "" {
		return errEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(id, payload)
}

func (s *DirStore) put(id, payload string) error {
	f, err := os.CreateTemp(s.dir, "*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()
	if _, err := f.WriteString(payload); err != nil {
		_ = f.Close()
		return errors.Join(fmt.Errorf("failed to write blob %s: %w", id, err), os.Remove(tmp))
	}
	if err := f.Close(); err != nil {
		return errors.Join(fmt.Errorf("failed to close blob %s: %w", id, err), os.Remove(tmp))
	}
	if err := os.Rename(tmp, s.pathFor(id)); err != nil {
		return errors.Join(fmt.Errorf("failed to finalize blob %s: %w", id, err), os.Remove(tmp))
	}
	return nil
}

// Get implements Store.
func (s *DirStore) Get(id string) (string, bool, error) {
	if id == "" {
		return "", false, errEmptyID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(s.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read blob %s: %w", id, err)
	}
	return string(data), true, nil
}

// Delete implements Store.
func (s *DirStore) Delete(id string) error {
	if id == "" {
		return errEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.pathFor(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %s: %w", id, err)
	}
	return nil
}

// GetAll implements Store.
func (s *DirStore) GetAll() ([]models.ImageBlob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob directory: %w", err)
	}
	var blobs []models.ImageBlob
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, blobSuffix) {
			continue
		}
		raw, err := base32Enc.DecodeString(strings.TrimSuffix(name, blobSuffix))
		if err != nil {
			// Not one of ours; leave it alone.
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read blob file %s: %w", name, err)
		}
		blobs = append(blobs, models.ImageBlob{ID: string(raw), Payload: string(data)})
	}
	return blobs, nil
}

// Clear implements Store.
func (s *DirStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read blob directory: %w", err)
	}
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), blobSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove blob file %s: %w", entry.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// PutAll implements Store.
func (s *DirStore) PutAll(blobs []models.ImageBlob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range blobs {
		if b.ID == "" {
			return errEmptyID
		}
		if err := s.put(b.ID, b.Payload); err != nil {
			return err
		}
	}
	return nil
}
