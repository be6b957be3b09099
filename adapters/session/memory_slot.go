package session

import (
	"sync"

	"github.com/penpot-ir/panel/ports"
)

// MemorySlot is an in-memory implementation of the SessionSlot interface.
// It remembers the attributes of the last write so callers can inspect them.
type MemorySlot struct {
	values map[string]string
	attrs  map[string]ports.SlotAttributes
	mu     sync.RWMutex
}

// NewMemorySlot creates a new empty in-memory slot
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{
		values: make(map[string]string),
		attrs:  make(map[string]ports.SlotAttributes),
	}
}

// Get returns the stored value for name
func (s *MemorySlot) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.values[name]
	return value, exists
}

// Set stores value under name, replacing any previous value
func (s *MemorySlot) Set(name, value string, attrs ports.SlotAttributes) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[name] = value
	s.attrs[name] = attrs
}

// Delete removes name from the slot
func (s *MemorySlot) Delete(name string, attrs ports.SlotAttributes) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, name)
	s.attrs[name] = attrs
}

// Attributes returns the attributes of the last write to name
func (s *MemorySlot) Attributes(name string) (ports.SlotAttributes, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attrs, exists := s.attrs[name]
	return attrs, exists
}
