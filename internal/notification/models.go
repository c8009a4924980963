package notification

import (
	"time"

	id "janseva/pkg/domain"
)

// Severity drives how the client renders a notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// Notification is a fire-and-forget user-facing notice. It is created only
// as a side effect of lifecycle and settlement events and mutated only by
// the read-flag toggle.
type Notification struct {
	ID        id.NotificationID `json:"id"`
	CitizenID id.CitizenID      `json:"citizen_id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Severity  Severity          `json:"severity"`
	Link      string            `json:"link,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"created_at"`
}

// Input carries the caller-supplied fields for a new notification.
type Input struct {
	Title    string
	Message  string
	Severity Severity
	Link     string
}
