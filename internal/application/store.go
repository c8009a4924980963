package application

import (
	"context"

	id "janseva/pkg/domain"
)

type Store interface {
	Save(ctx context.Context, app Application) error
	FindByID(ctx context.Context, appID id.ApplicationID) (Application, error)
	ListByCitizen(ctx context.Context, citizenID id.CitizenID) ([]Application, error)
	ListByStatus(ctx context.Context, status Status) ([]Application, error)
}
