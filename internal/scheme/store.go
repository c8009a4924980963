package scheme

import (
	"context"

	id "janseva/pkg/domain"
)

// Store is interface-driven to keep the catalog testable and to allow
// swapping in-memory and PostgreSQL persistence without rewiring business
// code.
type Store interface {
	Save(ctx context.Context, s Scheme) error
	FindByID(ctx context.Context, schemeID id.SchemeID) (Scheme, error)
	List(ctx context.Context) ([]Scheme, error)
	ListActive(ctx context.Context) ([]Scheme, error)
	// Delete exists for administrative housekeeping only; the catalog
	// service never calls it during normal scheme lifecycle.
	Delete(ctx context.Context, schemeID id.SchemeID) error
}
