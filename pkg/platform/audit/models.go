package audit

import (
	"context"
	"time"

	id "janseva/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	CitizenID id.CitizenID
	// Actor is the display name attributed to the action, or "System".
	Actor   string
	Action  string
	Subject string
	Reason  string
	// RequestID correlates the event with the HTTP request that caused it.
	RequestID string
	// TraceID and SpanID are captured from the active OpenTelemetry span
	// when one is present.
	TraceID string
	SpanID  string
	// Device is a human-readable summary of the requesting client,
	// derived from the User-Agent header.
	Device string
}

// Action identifiers. These are stable strings consumed by downstream
// compliance tooling.
const (
	EventApplicationSubmitted = "application_submitted"
	EventApplicationReviewed  = "application_under_review"
	EventApplicationApproved  = "application_approved"
	EventApplicationRejected  = "application_rejected"
	EventReviewNoteAdded      = "review_note_added"
	EventPaymentInitiated     = "payment_initiated"
	EventPaymentSettled       = "payment_settled"
	EventPaymentFailed        = "payment_failed"
	EventPaymentRetried       = "payment_retried"
	EventSchemeCreated        = "scheme_created"
	EventSchemeAmended        = "scheme_amended"
)

// Store is the persistence sink for audit events. Implementations must be
// append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
}
