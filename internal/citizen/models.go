package citizen

import (
	"time"

	id "janseva/pkg/domain"
)

// Profile is the subset of a citizen record the eligibility engine evaluates.
// Optional fields use pointers; an absent field causes the matching criterion
// to be skipped, never failed.
type Profile struct {
	ID               id.CitizenID
	FullName         string
	DateOfBirth      *time.Time
	Gender           id.Gender
	Occupation       string
	AnnualIncome     *int64
	Category         string
	BeneficiaryTypes []string
	UpdatedAt        time.Time
}

// HasBeneficiaryTypes reports whether the profile partakes in the beneficiary
// type criterion at all.
func (p Profile) HasBeneficiaryTypes() bool { return len(p.BeneficiaryTypes) > 0 }

// AgeAt returns the citizen's age in completed years at the given instant,
// and false when no date of birth is recorded.
func (p Profile) AgeAt(now time.Time) (int, bool) {
	if p.DateOfBirth == nil {
		return 0, false
	}
	dob := *p.DateOfBirth
	age := now.Year() - dob.Year()
	// Not yet reached this year's birthday: one less completed year.
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}
