package audit

import (
	"context"
	"sync"

	id "janseva/pkg/domain"
)

// InMemoryStore keeps audit events in process memory. Used for tests and
// single-instance deployments without Kafka.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByCitizen returns the recorded events for one citizen, oldest first.
func (s *InMemoryStore) ListByCitizen(_ context.Context, citizenID id.CitizenID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.CitizenID == citizenID {
			out = append(out, e)
		}
	}
	return out, nil
}

// All returns every recorded event, oldest first.
func (s *InMemoryStore) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...)
}
