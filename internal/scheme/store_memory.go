package scheme

import (
	"context"
	"sort"
	"sync"

	id "janseva/pkg/domain"
	"janseva/pkg/platform/sentinel"
)

// InMemoryStore keeps the catalog lightweight and testable. It intentionally
// favors clarity over performance.
type InMemoryStore struct {
	mu      sync.RWMutex
	schemes map[id.SchemeID]Scheme
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{schemes: make(map[id.SchemeID]Scheme)}
}

func (s *InMemoryStore) Save(_ context.Context, sc Scheme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemes[sc.ID] = sc
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, schemeID id.SchemeID) (Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sc, ok := s.schemes[schemeID]; ok {
		return sc, nil
	}
	return Scheme{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context) ([]Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Scheme, 0, len(s.schemes))
	for _, sc := range s.schemes {
		out = append(out, sc)
	}
	sortByName(out)
	return out, nil
}

func (s *InMemoryStore) ListActive(_ context.Context) ([]Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Scheme, 0, len(s.schemes))
	for _, sc := range s.schemes {
		if sc.IsActive() {
			out = append(out, sc)
		}
	}
	sortByName(out)
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, schemeID id.SchemeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schemes[schemeID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.schemes, schemeID)
	return nil
}

// sortByName keeps listings stable across map iteration order.
func sortByName(schemes []Scheme) {
	sort.Slice(schemes, func(i, j int) bool {
		return schemes[i].Name < schemes[j].Name
	})
}
