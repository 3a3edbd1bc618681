package session

import (
	"context"
	"sync"

	"github.com/pdv/terminal/internal/domain/tenant"
)

// MemoryStore keeps session state in memory. Used in tests and as the
// explicit, injectable request context for components that must not touch
// process-wide state.
type MemoryStore struct {
	mu    sync.RWMutex
	state State
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates an in-memory store seeded with the given state
func NewMemoryStoreWith(state State) *MemoryStore {
	return &MemoryStore{state: state}
}

// Load reads the current state
func (s *MemoryStore) Load(ctx context.Context) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, nil
}

// SetTenant persists the active tenant identity
func (s *MemoryStore) SetTenant(ctx context.Context, tenantID string, kind tenant.BusinessKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TenantID = tenantID
	s.state.BusinessKind = kind
	return nil
}

// ClearTenant removes the tenant identity
func (s *MemoryStore) ClearTenant(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TenantID = ""
	s.state.BusinessKind = ""
	return nil
}

// SetToken persists the session token
func (s *MemoryStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = token
	return nil
}

// ClearToken removes the session token
func (s *MemoryStore) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = ""
	return nil
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
