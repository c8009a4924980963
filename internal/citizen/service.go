package citizen

import (
	"context"
	"errors"

	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/sentinel"
	"janseva/pkg/requestcontext"
)

// Service owns citizen profiles. A profile is mutated only through Upsert;
// during an eligibility evaluation it is treated as immutable input.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Upsert writes the full profile for a citizen. Callers supply the complete
// record; absent optional fields remain absent.
func (s *Service) Upsert(ctx context.Context, profile Profile) (Profile, error) {
	if profile.ID.IsNil() {
		return Profile{}, dErrors.New(dErrors.CodeValidation, "profile citizen id is required")
	}
	if profile.AnnualIncome != nil && *profile.AnnualIncome < 0 {
		return Profile{}, dErrors.New(dErrors.CodeValidation, "annual income must not be negative")
	}
	switch profile.Gender {
	case id.GenderUnspecified, id.GenderMale, id.GenderFemale, id.GenderOther:
	default:
		return Profile{}, dErrors.New(dErrors.CodeValidation, "profile gender must be male, female, or other")
	}
	profile.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.Save(ctx, profile); err != nil {
		return Profile{}, dErrors.Wrap(err, dErrors.CodeInternal, "save profile")
	}
	return profile, nil
}

// Get returns one profile or a not_found domain error.
func (s *Service) Get(ctx context.Context, citizenID id.CitizenID) (Profile, error) {
	p, err := s.store.FindByID(ctx, citizenID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Profile{}, dErrors.New(dErrors.CodeNotFound, "citizen profile not found")
	}
	if err != nil {
		return Profile{}, dErrors.Wrap(err, dErrors.CodeInternal, "find profile")
	}
	return p, nil
}
