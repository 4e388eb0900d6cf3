package identity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-process storage. It is safe for
// concurrent use and is the store of choice for tests and for running the
// service without external infrastructure.
type MemoryStore struct {
	mu         sync.RWMutex
	identities map[uuid.UUID]*Identity
	byEmail    map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory identity store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		identities: make(map[uuid.UUID]*Identity),
		byEmail:    make(map[string]uuid.UUID),
	}
}

// Find returns the identity matching the filter.
func (m *MemoryStore) Find(ctx context.Context, filter Filter) (*Identity, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if filter.id != nil {
		if i, ok := m.identities[*filter.id]; ok {
			return i.clone(), nil
		}
		return nil, ErrNotFound
	}
	if filter.email != nil {
		if id, ok := m.byEmail[*filter.email]; ok {
			return m.identities[id].clone(), nil
		}
		return nil, ErrNotFound
	}

	// Token lookups scan; token values are unique across identities.
	for _, i := range m.identities {
		if filter.Matches(i) {
			return i.clone(), nil
		}
	}
	return nil, ErrNotFound
}

// Insert persists a new identity, rejecting duplicate emails.
func (m *MemoryStore) Insert(ctx context.Context, email string, passwordHash []byte) (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}

	i := &Identity{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: append([]byte(nil), passwordHash...),
		CreatedAt:    time.Now(),
	}

	m.identities[i.ID] = i
	m.byEmail[email] = i.ID

	return i.clone(), nil
}

// Update applies the changeset atomically under the store lock.
func (m *MemoryStore) Update(ctx context.Context, id uuid.UUID, changes Changes) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.identities[id]
	if !ok {
		return ErrNotFound
	}

	if changes.IfResetToken != nil {
		if i.ResetToken == nil || *i.ResetToken != *changes.IfResetToken {
			return ErrNotFound
		}
	}

	if changes.PasswordHash != nil {
		i.PasswordHash = append([]byte(nil), changes.PasswordHash...)
	}
	if v, ok := changes.SessionToken.Apply(); ok {
		i.SessionToken = v
	}
	if v, ok := changes.ResetToken.Apply(); ok {
		i.ResetToken = v
	}

	return nil
}

// Len returns the number of stored identities.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.identities)
}
