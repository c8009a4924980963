package domain

import (
	"fmt"
	"strings"
)

// Gender is used both as a profile attribute and as a scheme eligibility
// constraint. GenderAll is only meaningful on the constraint side.
type Gender string

const (
	GenderAll    Gender = "all"
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"

	// GenderUnspecified marks a profile that has not declared a gender.
	// The eligibility engine skips the gender criterion for such profiles.
	GenderUnspecified Gender = ""
)

// ParseGender validates a gender string. The empty string is accepted and
// maps to GenderUnspecified.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToLower(s)); g {
	case GenderAll, GenderMale, GenderFemale, GenderOther, GenderUnspecified:
		return g, nil
	default:
		return GenderUnspecified, fmt.Errorf("unknown gender: %s", s)
	}
}

func (g Gender) String() string { return string(g) }
