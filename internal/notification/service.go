package notification

import (
	"context"
	"errors"
	"strings"

	"janseva/internal/notification/metrics"
	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/sentinel"
	"janseva/pkg/requestcontext"
)

// Service records user-facing notices on behalf of the lifecycle and
// settlement components. No business logic lives here; store failures
// propagate because a notification is evidence of a state change and silent
// loss would desynchronize the user-visible record from the underlying
// state.
type Service struct {
	store   Store
	metrics *metrics.Metrics
}

func NewService(store Store, m *metrics.Metrics) *Service {
	return &Service{store: store, metrics: m}
}

// Notify records one notification for a citizen.
func (s *Service) Notify(ctx context.Context, citizenID id.CitizenID, in Input) (Notification, error) {
	if citizenID.IsNil() {
		return Notification{}, dErrors.New(dErrors.CodeValidation, "notification citizen id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return Notification{}, dErrors.New(dErrors.CodeValidation, "notification title is required")
	}
	switch in.Severity {
	case SeverityInfo, SeveritySuccess, SeverityDanger:
	default:
		return Notification{}, dErrors.New(dErrors.CodeValidation, "notification severity must be info, success, or danger")
	}

	n := Notification{
		ID:        id.NewNotificationID(),
		CitizenID: citizenID,
		Title:     in.Title,
		Message:   in.Message,
		Severity:  in.Severity,
		Link:      in.Link,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Save(ctx, n); err != nil {
		return Notification{}, dErrors.Wrap(err, dErrors.CodeInternal, "save notification")
	}
	s.metrics.IncCreated(string(in.Severity))
	return n, nil
}

// ListByCitizen returns a citizen's notifications, newest first.
func (s *Service) ListByCitizen(ctx context.Context, citizenID id.CitizenID) ([]Notification, error) {
	return s.store.ListByCitizen(ctx, citizenID)
}

// MarkRead flips the read flag on one notification.
func (s *Service) MarkRead(ctx context.Context, notificationID id.NotificationID) error {
	err := s.store.MarkRead(ctx, notificationID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "notification not found")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "mark notification read")
	}
	return nil
}

// MarkAllRead flips the read flag on every notification of a citizen.
func (s *Service) MarkAllRead(ctx context.Context, citizenID id.CitizenID) error {
	if err := s.store.MarkAllRead(ctx, citizenID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "mark all notifications read")
	}
	return nil
}

// UnreadCount returns the number of unread notifications for a citizen.
func (s *Service) UnreadCount(ctx context.Context, citizenID id.CitizenID) (int, error) {
	notifications, err := s.store.ListByCitizen(ctx, citizenID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "list notifications")
	}
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// Delete removes one notification. User-initiated housekeeping only; the
// core components never call this.
func (s *Service) Delete(ctx context.Context, notificationID id.NotificationID) error {
	err := s.store.Delete(ctx, notificationID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "notification not found")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete notification")
	}
	return nil
}
