//go:build integration

package scheme

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "janseva/pkg/domain"
	"janseva/pkg/platform/sentinel"
	"janseva/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	pg := containers.NewPostgresContainer(t)

	s := new(PostgresStoreSuite)
	s.ctx = context.Background()
	s.store = NewPostgresStore(pg.DB)
	if err := s.store.Schema(s.ctx); err != nil {
		t.Fatalf("schema migration failed: %v", err)
	}
	suite.Run(t, s)
}

func (s *PostgresStoreSuite) sample() Scheme {
	maxAge := 60
	maxIncome := int64(250000)
	now := time.Now().UTC().Truncate(time.Microsecond)
	return Scheme{
		ID:            id.NewSchemeID(),
		Name:          "Rural Housing Grant",
		Sector:        SectorHousing,
		BenefitAmount: 120000,
		BenefitType:   "grant",
		Eligibility: Rules{
			MinAge:      18,
			MaxAge:      &maxAge,
			Gender:      id.GenderAll,
			MaxIncome:   &maxIncome,
			Occupations: []string{"farmer", "labourer"},
			Categories:  []string{"rural"},
		},
		RequiredDocuments: []string{"identity_proof", "income_certificate"},
		Status:            StatusActive,
		Amendments: []Amendment{
			{At: now, Summary: "scheme created", Actor: "Officer Rao"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PostgresStoreSuite) TestSaveAndFind() {
	sc := s.sample()
	s.Require().NoError(s.store.Save(s.ctx, sc))

	found, err := s.store.FindByID(s.ctx, sc.ID)
	s.Require().NoError(err)
	s.Equal(sc.Name, found.Name)
	s.Equal(sc.Sector, found.Sector)
	s.Equal(sc.BenefitAmount, found.BenefitAmount)
	s.Equal(sc.Eligibility, found.Eligibility)
	s.Equal(sc.RequiredDocuments, found.RequiredDocuments)
	s.Equal(sc.Status, found.Status)
	s.Require().Len(found.Amendments, 1)
	s.Equal("scheme created", found.Amendments[0].Summary)
	s.WithinDuration(sc.CreatedAt, found.CreatedAt, time.Second)
}

func (s *PostgresStoreSuite) TestSaveIsUpsert() {
	sc := s.sample()
	s.Require().NoError(s.store.Save(s.ctx, sc))

	sc.Name = "Rural Housing Scheme"
	sc.BenefitAmount = 150000
	sc.Amendments = append(sc.Amendments, Amendment{
		At:      time.Now().UTC().Truncate(time.Microsecond),
		Summary: `name changed from "Rural Housing Grant" to "Rural Housing Scheme"`,
		Actor:   "Officer Rao",
	})
	s.Require().NoError(s.store.Save(s.ctx, sc))

	found, err := s.store.FindByID(s.ctx, sc.ID)
	s.Require().NoError(err)
	s.Equal("Rural Housing Scheme", found.Name)
	s.Equal(int64(150000), found.BenefitAmount)
	s.Len(found.Amendments, 2)
}

func (s *PostgresStoreSuite) TestListActiveExcludesInactive() {
	active := s.sample()
	inactive := s.sample()
	inactive.Status = StatusInactive
	s.Require().NoError(s.store.Save(s.ctx, active))
	s.Require().NoError(s.store.Save(s.ctx, inactive))

	listed, err := s.store.ListActive(s.ctx)
	s.Require().NoError(err)
	for _, sc := range listed {
		s.Equal(StatusActive, sc.Status)
		s.NotEqual(inactive.ID, sc.ID)
	}

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.GreaterOrEqual(len(all), len(listed)+1)
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(s.ctx, id.NewSchemeID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDelete() {
	sc := s.sample()
	s.Require().NoError(s.store.Save(s.ctx, sc))
	s.Require().NoError(s.store.Delete(s.ctx, sc.ID))

	_, err := s.store.FindByID(s.ctx, sc.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
