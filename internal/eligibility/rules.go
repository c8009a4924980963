// Package eligibility evaluates citizen profiles against scheme rules.
// This is pure domain logic - no I/O, no side effects. Identical inputs
// produce identical outputs, so the functions are safe for concurrent use
// without synchronization.
package eligibility

import (
	"time"

	"janseva/internal/citizen"
	"janseva/internal/scheme"
	id "janseva/pkg/domain"
)

// Reason identifies the first criterion a profile failed, or that all
// criteria passed.
type Reason string

const (
	ReasonEligible                Reason = "eligible"
	ReasonBelowMinimumAge         Reason = "below_minimum_age"
	ReasonAboveMaximumAge         Reason = "above_maximum_age"
	ReasonGenderNotCovered        Reason = "gender_not_covered"
	ReasonIncomeBelowMinimum      Reason = "income_below_minimum"
	ReasonIncomeAboveMaximum      Reason = "income_above_maximum"
	ReasonOccupationNotCovered    Reason = "occupation_not_covered"
	ReasonCategoryNotCovered      Reason = "category_not_covered"
	ReasonBeneficiaryTypeExcluded Reason = "beneficiary_type_excluded"
)

// Result carries the outcome of one evaluation with the failing criterion.
type Result struct {
	Eligible bool
	Reason   Reason
}

// Evaluate applies the rule chain to a profile. Rules are checked in a fixed
// order with fail-fast AND semantics:
//  1. Age (completed years at the evaluation instant)
//  2. Gender
//  3. Income
//  4. Occupation (wildcard "all" admits any)
//  5. Category (wildcard "all" admits any)
//  6. Beneficiary types (set intersection)
//
// An absent scheme criterion means no constraint; an absent profile field
// means the criterion is skipped, never failed. In particular, a profile
// without beneficiary types cannot be excluded on that criterion alone.
func Evaluate(profile citizen.Profile, sc scheme.Scheme, now time.Time) Result {
	rules := sc.Eligibility

	// Rule 1: age in completed years, only when a date of birth is recorded.
	if age, ok := profile.AgeAt(now); ok {
		if age < rules.MinAge {
			return failed(ReasonBelowMinimumAge)
		}
		if rules.MaxAge != nil && age > *rules.MaxAge {
			return failed(ReasonAboveMaximumAge)
		}
	}

	// Rule 2: gender, when the scheme constrains it and the profile declares one.
	if rules.Gender != id.GenderAll && rules.Gender != id.GenderUnspecified &&
		profile.Gender != id.GenderUnspecified && profile.Gender != rules.Gender {
		return failed(ReasonGenderNotCovered)
	}

	// Rule 3: income within [min, max], either bound optional.
	if profile.AnnualIncome != nil {
		income := *profile.AnnualIncome
		if income < rules.MinIncome {
			return failed(ReasonIncomeBelowMinimum)
		}
		if rules.MaxIncome != nil && income > *rules.MaxIncome {
			return failed(ReasonIncomeAboveMaximum)
		}
	}

	// Rule 4: occupation membership unless the wildcard admits any.
	if profile.Occupation != "" && !rules.AdmitsAnyOccupation() &&
		!contains(rules.Occupations, profile.Occupation) {
		return failed(ReasonOccupationNotCovered)
	}

	// Rule 5: category, same pattern as occupation.
	if profile.Category != "" && !rules.AdmitsAnyCategory() &&
		!contains(rules.Categories, profile.Category) {
		return failed(ReasonCategoryNotCovered)
	}

	// Rule 6: beneficiary types must intersect, but only when the profile
	// partakes in the criterion at all.
	if len(rules.BeneficiaryTypes) > 0 && profile.HasBeneficiaryTypes() &&
		!intersects(rules.BeneficiaryTypes, profile.BeneficiaryTypes) {
		return failed(ReasonBeneficiaryTypeExcluded)
	}

	return Result{Eligible: true, Reason: ReasonEligible}
}

// IsEligible reports whether the profile passes every criterion of the
// scheme's rules.
func IsEligible(profile citizen.Profile, sc scheme.Scheme, now time.Time) bool {
	return Evaluate(profile, sc, now).Eligible
}

// FilterEligible returns the active schemes the profile qualifies for,
// preserving input order.
func FilterEligible(profile citizen.Profile, schemes []scheme.Scheme, now time.Time) []scheme.Scheme {
	var out []scheme.Scheme
	for _, sc := range schemes {
		if !sc.IsActive() {
			continue
		}
		if IsEligible(profile, sc, now) {
			out = append(out, sc)
		}
	}
	return out
}

func failed(reason Reason) Result {
	return Result{Eligible: false, Reason: reason}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if contains(b, v) {
			return true
		}
	}
	return false
}
