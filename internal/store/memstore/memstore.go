// Package memstore is an in-memory slot for tests and dry runs.
package memstore

import (
	"sync"

	"github.com/idilsaglam/tada/internal/store"
)

// Slot keeps the collection bytes in memory. The zero value is an empty slot.
type Slot struct {
	mu     sync.Mutex
	data   []byte
	set    bool
	writes int

	// PutErr, when set, is returned by every Put.
	PutErr error
}

// New returns an empty slot.
func New() *Slot { return &Slot{} }

// NewWith returns a slot preloaded with raw bytes.
func NewWith(data []byte) *Slot {
	s := &Slot{}
	s.data = append([]byte(nil), data...)
	s.set = true
	return s
}

// Get returns a copy of the stored bytes, or store.ErrSlotEmpty before the
// first Put.
func (s *Slot) Get() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, store.ErrSlotEmpty
	}
	return append([]byte(nil), s.data...), nil
}

// Put replaces the stored bytes unless PutErr is set.
func (s *Slot) Put(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	s.data = append([]byte(nil), data...)
	s.set = true
	s.writes++
	return nil
}

// Writes counts successful Put calls.
func (s *Slot) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Bytes returns the raw slot content.
func (s *Slot) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}
