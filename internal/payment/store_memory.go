package payment

import (
	"context"
	"sort"
	"sync"

	id "janseva/pkg/domain"
	"janseva/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu            sync.RWMutex
	payments      map[id.PaymentID]Payment
	byApplication map[id.ApplicationID]id.PaymentID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		payments:      make(map[id.PaymentID]Payment),
		byApplication: make(map[id.ApplicationID]id.PaymentID),
	}
}

func (s *InMemoryStore) Save(_ context.Context, p Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[p.ID] = p
	s.byApplication[p.ApplicationID] = p.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, paymentID id.PaymentID) (Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.payments[paymentID]; ok {
		return p, nil
	}
	return Payment{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByApplication(_ context.Context, appID id.ApplicationID) (Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if pid, ok := s.byApplication[appID]; ok {
		return s.payments[pid], nil
	}
	return Payment{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListByCitizen(_ context.Context, citizenID id.CitizenID) ([]Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Payment
	for _, p := range s.payments {
		if p.CitizenID == citizenID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].InitiatedAt.After(out[j].InitiatedAt)
	})
	return out, nil
}
