package scheme

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/audit"
	"janseva/pkg/requestcontext"
)

// SchemeServiceSuite covers catalog validation, the amendment diff record,
// and activation toggling.
type SchemeServiceSuite struct {
	suite.Suite
	svc        *Service
	auditStore *audit.InMemoryStore
}

func TestSchemeServiceSuite(t *testing.T) {
	suite.Run(t, new(SchemeServiceSuite))
}

func (s *SchemeServiceSuite) SetupTest() {
	s.auditStore = audit.NewInMemoryStore()
	s.svc = NewService(NewInMemoryStore(), audit.NewPublisher(s.auditStore))
}

func (s *SchemeServiceSuite) context() context.Context {
	ctx := requestcontext.WithTime(context.Background(), time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC))
	return requestcontext.WithActor(ctx, "Officer Rao")
}

func (s *SchemeServiceSuite) create() Scheme {
	sc, err := s.svc.Create(s.context(), CreateInput{
		Name:          "Rural Housing Grant",
		Sector:        SectorHousing,
		BenefitAmount: 120000,
		BenefitType:   "one_time",
		Eligibility:   Rules{MinAge: 18, Occupations: []string{Wildcard}},
	})
	s.Require().NoError(err)
	return sc
}

func (s *SchemeServiceSuite) TestCreate() {
	s.Run("valid input creates an active scheme", func() {
		sc := s.create()
		s.Equal(StatusActive, sc.Status)
		s.False(sc.ID.IsNil())
		s.Empty(sc.Amendments)
	})

	s.Run("blank name is rejected", func() {
		_, err := s.svc.Create(s.context(), CreateInput{Name: "  ", Sector: SectorHealth, BenefitAmount: 100})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown sector is rejected", func() {
		_, err := s.svc.Create(s.context(), CreateInput{Name: "X", Sector: "space", BenefitAmount: 100})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("non-positive benefit amount is rejected", func() {
		_, err := s.svc.Create(s.context(), CreateInput{Name: "X", Sector: SectorHealth, BenefitAmount: 0})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("inverted age bounds are rejected", func() {
		maxAge := 20
		_, err := s.svc.Create(s.context(), CreateInput{
			Name: "X", Sector: SectorHealth, BenefitAmount: 100,
			Eligibility: Rules{MinAge: 40, MaxAge: &maxAge},
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *SchemeServiceSuite) TestAmend() {
	s.Run("changed fields produce one amendment with a combined summary", func() {
		sc := s.create()
		newName := "Rural Housing Scheme"
		newAmount := int64(150000)
		amended, err := s.svc.Amend(s.context(), sc.ID, Patch{
			Name:          &newName,
			BenefitAmount: &newAmount,
		})
		s.Require().NoError(err)

		s.Equal(newName, amended.Name)
		s.Equal(newAmount, amended.BenefitAmount)
		s.Require().Len(amended.Amendments, 1)
		s.Contains(amended.Amendments[0].Summary, `name changed from "Rural Housing Grant" to "Rural Housing Scheme"`)
		s.Contains(amended.Amendments[0].Summary, "benefit amount changed from 120000 to 150000")
		s.Equal("Officer Rao", amended.Amendments[0].Actor)
	})

	s.Run("eligibility changes are summarized", func() {
		sc := s.create()
		amended, err := s.svc.Amend(s.context(), sc.ID, Patch{
			Eligibility: &Rules{MinAge: 21, Occupations: []string{Wildcard}},
		})
		s.Require().NoError(err)
		s.Require().Len(amended.Amendments, 1)
		s.Contains(amended.Amendments[0].Summary, "minimum age changed from 18 to 21")
	})

	s.Run("a patch that changes nothing is rejected", func() {
		sc := s.create()
		sameName := sc.Name
		_, err := s.svc.Amend(s.context(), sc.ID, Patch{Name: &sameName})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown scheme returns not found", func() {
		name := "Y"
		_, err := s.svc.Amend(s.context(), id.NewSchemeID(), Patch{Name: &name})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *SchemeServiceSuite) TestActivationToggle() {
	sc := s.create()

	deactivated, err := s.svc.Deactivate(s.context(), sc.ID)
	s.Require().NoError(err)
	s.Equal(StatusInactive, deactivated.Status)
	s.Require().Len(deactivated.Amendments, 1)
	s.Equal("scheme deactivated", deactivated.Amendments[0].Summary)

	// Deactivating again is a no-op, not an error.
	again, err := s.svc.Deactivate(s.context(), sc.ID)
	s.Require().NoError(err)
	s.Len(again.Amendments, 1)

	reactivated, err := s.svc.Reactivate(s.context(), sc.ID)
	s.Require().NoError(err)
	s.Equal(StatusActive, reactivated.Status)
	s.Len(reactivated.Amendments, 2)
}

func (s *SchemeServiceSuite) TestAuditTrail() {
	sc := s.create()

	name := "Rural Housing Scheme"
	_, err := s.svc.Amend(s.context(), sc.ID, Patch{Name: &name})
	s.Require().NoError(err)

	_, err = s.svc.Deactivate(s.context(), sc.ID)
	s.Require().NoError(err)

	// An idempotent deactivate changes nothing and leaves no trace.
	_, err = s.svc.Deactivate(s.context(), sc.ID)
	s.Require().NoError(err)

	events := s.auditStore.All()
	s.Require().Len(events, 3)

	s.Equal(audit.EventSchemeCreated, events[0].Action)
	s.Equal(sc.ID.String(), events[0].Subject)
	s.Equal("Rural Housing Grant", events[0].Reason)
	s.Equal("Officer Rao", events[0].Actor)

	s.Equal(audit.EventSchemeAmended, events[1].Action)
	s.Equal(`name changed from "Rural Housing Grant" to "Rural Housing Scheme"`, events[1].Reason)

	s.Equal(audit.EventSchemeAmended, events[2].Action)
	s.Equal("scheme deactivated", events[2].Reason)
}

func (s *SchemeServiceSuite) TestListActive() {
	first := s.create()
	second := s.create()
	_, err := s.svc.Deactivate(s.context(), second.ID)
	s.Require().NoError(err)

	active, err := s.svc.ListActive(s.context())
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal(first.ID, active[0].ID)

	all, err := s.svc.List(s.context())
	s.Require().NoError(err)
	s.Len(all, 2)
}
