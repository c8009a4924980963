package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	id "janseva/pkg/domain"
	"janseva/pkg/platform/sentinel"
)

const (
	// Redis key prefixes: one JSON blob per notification, one list of ids
	// per citizen (newest first).
	notificationKeyPrefix = "notif:id:"
	citizenKeyPrefix      = "notif:citizen:"
)

// RedisStore is a Redis-backed notification store for deployments where
// several instances share the user-visible notice stream.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	exists, err := s.client.Exists(ctx, notificationKey(n.ID)).Result()
	if err != nil {
		return fmt.Errorf("check notification: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, notificationKey(n.ID), payload, 0)
	if exists == 0 {
		// LPUSH keeps the citizen's list newest first.
		pipe.LPush(ctx, citizenKey(n.CitizenID), n.ID.String())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, notificationID id.NotificationID) (Notification, error) {
	raw, err := s.client.Get(ctx, notificationKey(notificationID)).Result()
	if errors.Is(err, redis.Nil) {
		return Notification{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Notification{}, fmt.Errorf("get notification: %w", err)
	}
	var n Notification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return Notification{}, fmt.Errorf("unmarshal notification: %w", err)
	}
	return n, nil
}

func (s *RedisStore) ListByCitizen(ctx context.Context, citizenID id.CitizenID) ([]Notification, error) {
	ids, err := s.client.LRange(ctx, citizenKey(citizenID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	out := make([]Notification, 0, len(ids))
	for _, rawID := range ids {
		nid, err := id.ParseNotificationID(rawID)
		if err != nil {
			continue
		}
		n, err := s.FindByID(ctx, nid)
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *RedisStore) MarkRead(ctx context.Context, notificationID id.NotificationID) error {
	n, err := s.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	n.Read = true
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := s.client.Set(ctx, notificationKey(notificationID), payload, 0).Err(); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *RedisStore) MarkAllRead(ctx context.Context, citizenID id.CitizenID) error {
	notifications, err := s.ListByCitizen(ctx, citizenID)
	if err != nil {
		return err
	}
	pipe := s.client.Pipeline()
	for _, n := range notifications {
		if n.Read {
			continue
		}
		n.Read = true
		payload, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("marshal notification: %w", err)
		}
		pipe.Set(ctx, notificationKey(n.ID), payload, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, notificationID id.NotificationID) error {
	n, err := s.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	pipe := s.client.Pipeline()
	pipe.Del(ctx, notificationKey(notificationID))
	pipe.LRem(ctx, citizenKey(n.CitizenID), 0, notificationID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

func notificationKey(notificationID id.NotificationID) string {
	return notificationKeyPrefix + notificationID.String()
}

func citizenKey(citizenID id.CitizenID) string {
	return citizenKeyPrefix + citizenID.String()
}
