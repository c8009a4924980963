package citizen

import (
	"context"

	id "janseva/pkg/domain"
)

type Store interface {
	Save(ctx context.Context, profile Profile) error
	FindByID(ctx context.Context, citizenID id.CitizenID) (Profile, error)
}
