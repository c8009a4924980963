package payment

import (
	"context"

	id "janseva/pkg/domain"
)

type Store interface {
	Save(ctx context.Context, p Payment) error
	FindByID(ctx context.Context, paymentID id.PaymentID) (Payment, error)
	FindByApplication(ctx context.Context, appID id.ApplicationID) (Payment, error)
	ListByCitizen(ctx context.Context, citizenID id.CitizenID) ([]Payment, error)
}
