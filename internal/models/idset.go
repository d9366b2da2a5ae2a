// Defines IDSet, the persisted set-of-ids representation used for the
// expansion state collections.

package models

import (
	"encoding/json"
	"sort"
)

// IDSet is a set of entity ids. It marshals as a sorted JSON array so the
// persisted document is deterministic, and unmarshals from the plain
// arrays written by every schema version.
type IDSet map[string]struct{}

// NewIDSet returns a set holding the given ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Remove deletes id from the set. Removing an absent id is a no-op.
func (s IDSet) Remove(id string) {
	delete(s, id)
}

// Toggle performs a symmetric difference with {id}: present ids are
// removed, absent ids are added.
func (s IDSet) Toggle(id string) {
	if s.Has(id) {
		delete(s, id)
	} else {
		s[id] = struct{}{}
	}
}

// Clone returns a copy of the set. A nil set clones to an empty set.
func (s IDSet) Clone() IDSet {
	c := make(IDSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MarshalJSON implements json.Marshaler, emitting a sorted array.
func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON implements json.Unmarshaler, accepting a JSON array.
func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
