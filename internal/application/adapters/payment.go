// Package adapters bridges the application lifecycle to collaborating
// services without introducing package cycles.
package adapters

import (
	"context"

	"janseva/internal/payment"
	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
)

// PaymentInitiator adapts the settlement simulator to the initiation port
// used by the approval side effect. The settlement service itself resolves
// applications through the lifecycle service, so the two are constructed
// first and the initiator bound afterwards.
type PaymentInitiator struct {
	payments *payment.Service
}

func NewPaymentInitiator() *PaymentInitiator {
	return &PaymentInitiator{}
}

// Bind wires the settlement service once both services exist.
func (a *PaymentInitiator) Bind(payments *payment.Service) {
	a.payments = payments
}

func (a *PaymentInitiator) Initiate(ctx context.Context, appID id.ApplicationID) error {
	if a.payments == nil {
		return dErrors.New(dErrors.CodeInternal, "payment service not wired")
	}
	_, err := a.payments.Initiate(ctx, appID)
	return err
}
