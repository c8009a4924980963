package scheme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/audit"
	"janseva/pkg/platform/sentinel"
	"janseva/pkg/requestcontext"
)

// Service owns the benefit scheme catalog. Schemes are created by
// administrators and changed only through Amend, which appends one amendment
// record derived from the diff of changed fields. Schemes are never
// hard-deleted through this service.
type Service struct {
	store   Store
	auditor *audit.Publisher
}

func NewService(store Store, auditor *audit.Publisher) *Service {
	return &Service{store: store, auditor: auditor}
}

// CreateInput carries the administrator-supplied fields for a new scheme.
type CreateInput struct {
	Name              string
	Sector            Sector
	BenefitAmount     int64
	BenefitType       string
	Eligibility       Rules
	RequiredDocuments []string
}

// Create validates and stores a new active scheme.
func (s *Service) Create(ctx context.Context, in CreateInput) (Scheme, error) {
	if err := validateCreate(in); err != nil {
		return Scheme{}, err
	}
	now := requestcontext.Now(ctx)
	sc := Scheme{
		ID:                id.NewSchemeID(),
		Name:              strings.TrimSpace(in.Name),
		Sector:            in.Sector,
		BenefitAmount:     in.BenefitAmount,
		BenefitType:       in.BenefitType,
		Eligibility:       in.Eligibility,
		RequiredDocuments: in.RequiredDocuments,
		Status:            StatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.Save(ctx, sc); err != nil {
		return Scheme{}, dErrors.Wrap(err, dErrors.CodeInternal, "save scheme")
	}

	if err := s.auditor.Emit(ctx, audit.Event{
		Action:  audit.EventSchemeCreated,
		Subject: sc.ID.String(),
		Reason:  sc.Name,
	}); err != nil {
		return Scheme{}, err
	}
	return sc, nil
}

// Patch carries the fields an amendment may change. Nil fields are left
// untouched.
type Patch struct {
	Name              *string
	Sector            *Sector
	BenefitAmount     *int64
	BenefitType       *string
	Eligibility       *Rules
	RequiredDocuments *[]string
}

// Amend applies a patch to a scheme and appends one amendment record
// summarizing every field that actually changed. A patch that changes
// nothing is rejected.
func (s *Service) Amend(ctx context.Context, schemeID id.SchemeID, patch Patch) (Scheme, error) {
	sc, err := s.Get(ctx, schemeID)
	if err != nil {
		return Scheme{}, err
	}

	var changes []string
	if patch.Name != nil && *patch.Name != sc.Name {
		changes = append(changes, fmt.Sprintf("name changed from %q to %q", sc.Name, *patch.Name))
		sc.Name = *patch.Name
	}
	if patch.Sector != nil && *patch.Sector != sc.Sector {
		if !validSector(*patch.Sector) {
			return Scheme{}, dErrors.New(dErrors.CodeValidation, "unknown sector: "+string(*patch.Sector))
		}
		changes = append(changes, fmt.Sprintf("sector changed from %s to %s", sc.Sector, *patch.Sector))
		sc.Sector = *patch.Sector
	}
	if patch.BenefitAmount != nil && *patch.BenefitAmount != sc.BenefitAmount {
		if *patch.BenefitAmount <= 0 {
			return Scheme{}, dErrors.New(dErrors.CodeValidation, "benefit amount must be positive")
		}
		changes = append(changes, fmt.Sprintf("benefit amount changed from %d to %d", sc.BenefitAmount, *patch.BenefitAmount))
		sc.BenefitAmount = *patch.BenefitAmount
	}
	if patch.BenefitType != nil && *patch.BenefitType != sc.BenefitType {
		changes = append(changes, fmt.Sprintf("benefit type changed from %q to %q", sc.BenefitType, *patch.BenefitType))
		sc.BenefitType = *patch.BenefitType
	}
	if patch.Eligibility != nil {
		if err := validateRules(*patch.Eligibility); err != nil {
			return Scheme{}, err
		}
		if diff := rulesDiff(sc.Eligibility, *patch.Eligibility); diff != "" {
			changes = append(changes, diff)
			sc.Eligibility = *patch.Eligibility
		}
	}
	if patch.RequiredDocuments != nil && !equalStrings(*patch.RequiredDocuments, sc.RequiredDocuments) {
		changes = append(changes, "required documents updated")
		sc.RequiredDocuments = *patch.RequiredDocuments
	}

	if len(changes) == 0 {
		return Scheme{}, dErrors.New(dErrors.CodeValidation, "amendment changes no fields")
	}

	now := requestcontext.Now(ctx)
	summary := strings.Join(changes, "; ")
	sc.Amendments = append(sc.Amendments, Amendment{
		At:      now,
		Summary: summary,
		Actor:   requestcontext.Actor(ctx),
	})
	sc.UpdatedAt = now

	if err := s.store.Save(ctx, sc); err != nil {
		return Scheme{}, dErrors.Wrap(err, dErrors.CodeInternal, "save scheme")
	}

	if err := s.auditor.Emit(ctx, audit.Event{
		Action:  audit.EventSchemeAmended,
		Subject: sc.ID.String(),
		Reason:  summary,
	}); err != nil {
		return Scheme{}, err
	}
	return sc, nil
}

// Deactivate closes a scheme to new applications. Existing applications and
// payments are unaffected.
func (s *Service) Deactivate(ctx context.Context, schemeID id.SchemeID) (Scheme, error) {
	return s.setStatus(ctx, schemeID, StatusInactive, "scheme deactivated")
}

// Reactivate reopens a scheme to new applications.
func (s *Service) Reactivate(ctx context.Context, schemeID id.SchemeID) (Scheme, error) {
	return s.setStatus(ctx, schemeID, StatusActive, "scheme reactivated")
}

func (s *Service) setStatus(ctx context.Context, schemeID id.SchemeID, status Status, summary string) (Scheme, error) {
	sc, err := s.Get(ctx, schemeID)
	if err != nil {
		return Scheme{}, err
	}
	if sc.Status == status {
		return sc, nil
	}
	now := requestcontext.Now(ctx)
	sc.Status = status
	sc.UpdatedAt = now
	sc.Amendments = append(sc.Amendments, Amendment{
		At:      now,
		Summary: summary,
		Actor:   requestcontext.Actor(ctx),
	})
	if err := s.store.Save(ctx, sc); err != nil {
		return Scheme{}, dErrors.Wrap(err, dErrors.CodeInternal, "save scheme")
	}

	if err := s.auditor.Emit(ctx, audit.Event{
		Action:  audit.EventSchemeAmended,
		Subject: sc.ID.String(),
		Reason:  summary,
	}); err != nil {
		return Scheme{}, err
	}
	return sc, nil
}

// Get returns one scheme or a not_found domain error.
func (s *Service) Get(ctx context.Context, schemeID id.SchemeID) (Scheme, error) {
	sc, err := s.store.FindByID(ctx, schemeID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Scheme{}, dErrors.New(dErrors.CodeNotFound, "scheme not found")
	}
	if err != nil {
		return Scheme{}, dErrors.Wrap(err, dErrors.CodeInternal, "find scheme")
	}
	return sc, nil
}

// List returns every scheme, active or not.
func (s *Service) List(ctx context.Context) ([]Scheme, error) {
	return s.store.List(ctx)
}

// ListActive returns only schemes currently open to applications.
func (s *Service) ListActive(ctx context.Context) ([]Scheme, error) {
	return s.store.ListActive(ctx)
}

func validateCreate(in CreateInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return dErrors.New(dErrors.CodeValidation, "scheme name is required")
	}
	if !validSector(in.Sector) {
		return dErrors.New(dErrors.CodeValidation, "unknown sector: "+string(in.Sector))
	}
	if in.BenefitAmount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "benefit amount must be positive")
	}
	return validateRules(in.Eligibility)
}

func validateRules(r Rules) error {
	if r.MinAge < 0 {
		return dErrors.New(dErrors.CodeValidation, "minimum age must not be negative")
	}
	if r.MaxAge != nil && *r.MaxAge < r.MinAge {
		return dErrors.New(dErrors.CodeValidation, "maximum age must not be below minimum age")
	}
	if r.MinIncome < 0 {
		return dErrors.New(dErrors.CodeValidation, "minimum income must not be negative")
	}
	if r.MaxIncome != nil && *r.MaxIncome < r.MinIncome {
		return dErrors.New(dErrors.CodeValidation, "maximum income must not be below minimum income")
	}
	switch r.Gender {
	case id.GenderUnspecified, id.GenderAll, id.GenderMale, id.GenderFemale, id.GenderOther:
	default:
		return dErrors.New(dErrors.CodeValidation, "rules gender must be all, male, female, or other")
	}
	return nil
}

func rulesDiff(old, next Rules) string {
	var parts []string
	if old.MinAge != next.MinAge {
		parts = append(parts, fmt.Sprintf("minimum age changed from %d to %d", old.MinAge, next.MinAge))
	}
	if !equalIntPtr(old.MaxAge, next.MaxAge) {
		parts = append(parts, "maximum age updated")
	}
	if old.Gender != next.Gender {
		parts = append(parts, fmt.Sprintf("gender constraint changed from %s to %s", old.Gender, next.Gender))
	}
	if old.MinIncome != next.MinIncome {
		parts = append(parts, fmt.Sprintf("minimum income changed from %d to %d", old.MinIncome, next.MinIncome))
	}
	if !equalInt64Ptr(old.MaxIncome, next.MaxIncome) {
		parts = append(parts, "maximum income updated")
	}
	if !equalStrings(old.Occupations, next.Occupations) {
		parts = append(parts, "occupations updated")
	}
	if !equalStrings(old.Categories, next.Categories) {
		parts = append(parts, "categories updated")
	}
	if !equalStrings(old.BeneficiaryTypes, next.BeneficiaryTypes) {
		parts = append(parts, "beneficiary types updated")
	}
	return strings.Join(parts, "; ")
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
