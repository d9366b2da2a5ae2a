// In-memory Store used by tests and by callers that have no data
// directory (e.g. rendering an archive without restoring it).

package blobstore

import (
	"sort"
	"sync"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/models"
)

// MemStore is an in-memory Store.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string]string
}

var _ Store = (*MemStore)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *MemStore {
	return &MemStore{blobs: map[string]string{}}
}

// Put implements Store.
func (s *MemStore) Put(id, payload string) error {
	if id == "" {
		return errEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[id] = payload
	return nil
}

// Get implements Store.
func (s *MemStore) Get(id string) (string, bool, error) {
	if id == "" {
		return "", false, errEmptyID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.blobs[id]
	return payload, ok, nil
}

// Delete implements Store.
func (s *MemStore) Delete(id string) error {
	if id == "" {
		return errEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, id)
	return nil
}

// GetAll implements Store.
func (s *MemStore) GetAll() ([]models.ImageBlob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.blobs))
	for id := range s.blobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	blobs := make([]models.ImageBlob, 0, len(ids))
	for _, id := range ids {
		blobs = append(blobs, models.ImageBlob{ID: id, Payload: s.blobs[id]})
	}
	return blobs, nil
}

// Clear implements Store.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs = map[string]string{}
	return nil
}

// PutAll implements Store.
func (s *MemStore) PutAll(blobs []models.ImageBlob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range blobs {
		if b.ID == "" {
			return errEmptyID
		}
		s.blobs[b.ID] = b.Payload
	}
	return nil
}
