package application

import (
	"time"

	id "janseva/pkg/domain"
)

// Status is the lifecycle state of an application. pending is the initial
// state; under_review is optional; approved and rejected are terminal in
// normal use.
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

// KnownStatus reports whether s is one of the four lifecycle states.
func KnownStatus(s Status) bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// HistoryEntry records one status change. The history is append-only and its
// last entry always matches the application's current status.
type HistoryEntry struct {
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
	Actor  string    `json:"actor"`
}

// ReviewNote is free-text reviewer commentary, append-only, independent of
// status changes.
type ReviewNote struct {
	Note     string    `json:"note"`
	At       time.Time `json:"at"`
	Reviewer string    `json:"reviewer"`
}

// Application is one citizen's request against one scheme. It is created on
// submission, mutated only by Transition and AddReviewNote, and never
// deleted.
type Application struct {
	ID            id.ApplicationID
	CitizenID     id.CitizenID
	SchemeID      id.SchemeID
	Status        Status
	SubmittedAt   time.Time
	StatusHistory []HistoryEntry
	ReviewNotes   []ReviewNote
	// FormData is the opaque key/value bag supplied at submission, for
	// example bank account, routing code, and purpose.
	FormData map[string]string
}
