package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/penpot-ir/panel/core"
)

// MemoryStore is an in-memory implementation of the CredentialStore interface
type MemoryStore struct {
	users  map[string]*core.CredentialRecord
	nextID int64
	mu     sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]*core.CredentialRecord),
		nextID: 1,
	}
}

// CreateUser stores a copy of record and assigns it an id
func (s *MemoryStore) CreateUser(ctx context.Context, record *core.CredentialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[record.Email]; exists {
		return fmt.Errorf("user %q already exists", record.Email)
	}

	now := time.Now().UTC()
	stored := *record
	stored.ID = s.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.nextID++
	s.users[stored.Email] = &stored

	record.ID = stored.ID
	return nil
}

// FindByEmail returns the user whose email matches exactly
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*core.CredentialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.users[email]
	if !exists {
		return nil, core.ErrNotFound
	}

	found := *record
	return &found, nil
}
