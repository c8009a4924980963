package citizen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
)

type CitizenSuite struct {
	suite.Suite
	svc *Service
}

func TestCitizenSuite(t *testing.T) {
	suite.Run(t, new(CitizenSuite))
}

func (s *CitizenSuite) SetupTest() {
	s.svc = NewService(NewInMemoryStore())
}

func (s *CitizenSuite) TestAgeAt() {
	dob := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	profile := Profile{DateOfBirth: &dob}

	s.Run("day before the birthday", func() {
		age, ok := profile.AgeAt(time.Date(2026, time.June, 14, 23, 0, 0, 0, time.UTC))
		s.True(ok)
		s.Equal(35, age)
	})

	s.Run("on the birthday", func() {
		age, ok := profile.AgeAt(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC))
		s.True(ok)
		s.Equal(36, age)
	})

	s.Run("earlier month of the year", func() {
		age, ok := profile.AgeAt(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
		s.True(ok)
		s.Equal(35, age)
	})

	s.Run("no date of birth", func() {
		_, ok := Profile{}.AgeAt(time.Now())
		s.False(ok)
	})
}

func (s *CitizenSuite) TestUpsert() {
	ctx := context.Background()

	s.Run("round trip", func() {
		income := int64(180000)
		in := Profile{
			ID:           id.NewCitizenID(),
			FullName:     "Ravi Kumar",
			Gender:       id.GenderMale,
			Occupation:   "weaver",
			AnnualIncome: &income,
		}
		saved, err := s.svc.Upsert(ctx, in)
		s.Require().NoError(err)
		s.False(saved.UpdatedAt.IsZero())

		got, err := s.svc.Get(ctx, in.ID)
		s.Require().NoError(err)
		s.Equal("Ravi Kumar", got.FullName)
		s.Equal(income, *got.AnnualIncome)
	})

	s.Run("missing id is rejected", func() {
		_, err := s.svc.Upsert(ctx, Profile{FullName: "X"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("negative income is rejected", func() {
		income := int64(-1)
		_, err := s.svc.Upsert(ctx, Profile{ID: id.NewCitizenID(), AnnualIncome: &income})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("gender all is not a profile value", func() {
		_, err := s.svc.Upsert(ctx, Profile{ID: id.NewCitizenID(), Gender: id.GenderAll})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown citizen returns not found", func() {
		_, err := s.svc.Get(ctx, id.NewCitizenID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
