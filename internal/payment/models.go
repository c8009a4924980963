package payment

import (
	"time"

	id "janseva/pkg/domain"
)

// Status is the settlement state. processing is the initial state; failed
// payments may be retried back to processing any number of times.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusPaid       Status = "paid"
	StatusFailed     Status = "failed"
)

// Method is the settlement channel, chosen once at initiation and fixed
// thereafter.
type Method string

const (
	MethodDirectBenefitTransfer Method = "direct_benefit_transfer"
	MethodBankTransfer          Method = "bank_transfer"
	MethodPostal                Method = "postal"
)

// methods lists the channels the simulator picks from, uniformly at random.
var methods = []Method{MethodDirectBenefitTransfer, MethodBankTransfer, MethodPostal}

// TransactionEntry records one settlement state change. The history is
// append-only.
type TransactionEntry struct {
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
}

// Payment is the settlement attempt for one approved application. Amount is
// copied from the scheme at initiation time and never re-read, so later
// scheme amendments do not change in-flight disbursements.
type Payment struct {
	ID            id.PaymentID
	ApplicationID id.ApplicationID
	CitizenID     id.CitizenID
	SchemeID      id.SchemeID
	Amount        int64
	Status        Status
	Method        Method
	Transactions  []TransactionEntry
	InitiatedAt   time.Time
	CompletedAt   *time.Time
}
