// Package ports declares the narrow interfaces the lifecycle service needs
// from its collaborators, so the service can be tested against mocks and the
// wiring decided in cmd/server.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks Notifier,PaymentInitiator

import (
	"context"

	"janseva/internal/notification"
	id "janseva/pkg/domain"
)

// Notifier records user-facing notices emitted by lifecycle transitions.
type Notifier interface {
	Notify(ctx context.Context, citizenID id.CitizenID, in notification.Input) (notification.Notification, error)
}

// PaymentInitiator starts fund settlement for an approved application. It
// must be idempotent per application: re-approval must not create a second
// payment.
type PaymentInitiator interface {
	Initiate(ctx context.Context, applicationID id.ApplicationID) error
}
