package domain

import (
	"github.com/google/uuid"

	dErrors "janseva/pkg/domain-errors"
)

// Typed IDs prevent cross-entity assignment at compile time. Parsing enforces
// the invariant that IDs are valid, non-nil UUIDs at trust boundaries.
type (
	CitizenID      uuid.UUID
	SchemeID       uuid.UUID
	ApplicationID  uuid.UUID
	PaymentID      uuid.UUID
	NotificationID uuid.UUID
)

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id must not be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id is not a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id must not be the nil UUID")
	}
	return u, nil
}

// NewCitizenID returns a freshly generated citizen ID.
func NewCitizenID() CitizenID { return CitizenID(uuid.New()) }

// ParseCitizenID validates and returns a CitizenID.
func ParseCitizenID(s string) (CitizenID, error) {
	u, err := parseUUID(s)
	return CitizenID(u), err
}

func (id CitizenID) String() string { return uuid.UUID(id).String() }
func (id CitizenID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewSchemeID returns a freshly generated scheme ID.
func NewSchemeID() SchemeID { return SchemeID(uuid.New()) }

// ParseSchemeID validates and returns a SchemeID.
func ParseSchemeID(s string) (SchemeID, error) {
	u, err := parseUUID(s)
	return SchemeID(u), err
}

func (id SchemeID) String() string { return uuid.UUID(id).String() }
func (id SchemeID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewApplicationID returns a freshly generated application ID.
func NewApplicationID() ApplicationID { return ApplicationID(uuid.New()) }

// ParseApplicationID validates and returns an ApplicationID.
func ParseApplicationID(s string) (ApplicationID, error) {
	u, err := parseUUID(s)
	return ApplicationID(u), err
}

func (id ApplicationID) String() string { return uuid.UUID(id).String() }
func (id ApplicationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewPaymentID returns a freshly generated payment ID.
func NewPaymentID() PaymentID { return PaymentID(uuid.New()) }

// ParsePaymentID validates and returns a PaymentID.
func ParsePaymentID(s string) (PaymentID, error) {
	u, err := parseUUID(s)
	return PaymentID(u), err
}

func (id PaymentID) String() string { return uuid.UUID(id).String() }
func (id PaymentID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewNotificationID returns a freshly generated notification ID.
func NewNotificationID() NotificationID { return NotificationID(uuid.New()) }

// ParseNotificationID validates and returns a NotificationID.
func ParseNotificationID(s string) (NotificationID, error) {
	u, err := parseUUID(s)
	return NotificationID(u), err
}

func (id NotificationID) String() string { return uuid.UUID(id).String() }
func (id NotificationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
