package citizen

import (
	"context"
	"sync"

	id "janseva/pkg/domain"
	"janseva/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[id.CitizenID]Profile
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[id.CitizenID]Profile)}
}

func (s *InMemoryStore) Save(_ context.Context, profile Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = profile
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, citizenID id.CitizenID) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.profiles[citizenID]; ok {
		return p, nil
	}
	return Profile{}, sentinel.ErrNotFound
}
