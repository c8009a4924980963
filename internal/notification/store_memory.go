package notification

import (
	"context"
	"sort"
	"sync"

	id "janseva/pkg/domain"
	"janseva/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	byID      map[id.NotificationID]Notification
	byCitizen map[id.CitizenID][]id.NotificationID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:      make(map[id.NotificationID]Notification),
		byCitizen: make(map[id.CitizenID][]id.NotificationID),
	}
}

func (s *InMemoryStore) Save(_ context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[n.ID]; !exists {
		s.byCitizen[n.CitizenID] = append(s.byCitizen[n.CitizenID], n.ID)
	}
	s.byID[n.ID] = n
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, notificationID id.NotificationID) (Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n, ok := s.byID[notificationID]; ok {
		return n, nil
	}
	return Notification{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListByCitizen(_ context.Context, citizenID id.CitizenID) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byCitizen[citizenID]
	out := make([]Notification, 0, len(ids))
	for _, nid := range ids {
		out = append(out, s.byID[nid])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) MarkRead(_ context.Context, notificationID id.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.byID[notificationID]
	if !ok {
		return sentinel.ErrNotFound
	}
	n.Read = true
	s.byID[notificationID] = n
	return nil
}

func (s *InMemoryStore) MarkAllRead(_ context.Context, citizenID id.CitizenID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, nid := range s.byCitizen[citizenID] {
		n := s.byID[nid]
		n.Read = true
		s.byID[nid] = n
	}
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, notificationID id.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.byID[notificationID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byID, notificationID)
	ids := s.byCitizen[n.CitizenID]
	for i, nid := range ids {
		if nid == notificationID {
			s.byCitizen[n.CitizenID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
