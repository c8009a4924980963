package application

import (
	"context"
	"sort"
	"sync"

	id "janseva/pkg/domain"
	"janseva/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu   sync.RWMutex
	apps map[id.ApplicationID]Application
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{apps: make(map[id.ApplicationID]Application)}
}

func (s *InMemoryStore) Save(_ context.Context, app Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[app.ID] = app
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, appID id.ApplicationID) (Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if app, ok := s.apps[appID]; ok {
		return app, nil
	}
	return Application{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListByCitizen(_ context.Context, citizenID id.CitizenID) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Application
	for _, app := range s.apps {
		if app.CitizenID == citizenID {
			out = append(out, app)
		}
	}
	sortBySubmission(out)
	return out, nil
}

func (s *InMemoryStore) ListByStatus(_ context.Context, status Status) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Application
	for _, app := range s.apps {
		if app.Status == status {
			out = append(out, app)
		}
	}
	sortBySubmission(out)
	return out, nil
}

// sortBySubmission keeps listings stable, newest submissions first.
func sortBySubmission(apps []Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].SubmittedAt.After(apps[j].SubmittedAt)
	})
}
