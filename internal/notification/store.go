package notification

import (
	"context"

	id "janseva/pkg/domain"
)

type Store interface {
	Save(ctx context.Context, n Notification) error
	FindByID(ctx context.Context, notificationID id.NotificationID) (Notification, error)
	// ListByCitizen returns notifications newest first.
	ListByCitizen(ctx context.Context, citizenID id.CitizenID) ([]Notification, error)
	MarkRead(ctx context.Context, notificationID id.NotificationID) error
	MarkAllRead(ctx context.Context, citizenID id.CitizenID) error
	Delete(ctx context.Context, notificationID id.NotificationID) error
}
