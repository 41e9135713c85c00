package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/npc"
)

// MockStorage is an in-memory implementation of Storage for testing and
// offline runs.
type MockStorage struct {
	mu            sync.RWMutex
	profiles      map[string]*npc.Profile
	relationships map[string]*npc.Relationship
	pingError     error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		profiles:      make(map[string]*npc.Profile),
		relationships: make(map[string]*npc.Relationship),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// AddProfile seeds a profile into the mock
func (m *MockStorage) AddProfile(p *npc.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) GetProfile(ctx context.Context, id string) (*npc.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profiles[id], nil
}

func (m *MockStorage) ListProfiles(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.profiles))
	for id := range m.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MockStorage) LoadRelationship(ctx context.Context, npcID string) (*npc.Relationship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.relationships[npcID], nil
}

func (m *MockStorage) SaveRelationship(ctx context.Context, npcID string, rel *npc.Relationship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relationships[npcID] = rel
	return nil
}
