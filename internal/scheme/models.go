package scheme

import (
	"time"

	id "janseva/pkg/domain"
)

// Sector tags a scheme with the government department it belongs to.
type Sector string

const (
	SectorAgriculture    Sector = "agriculture"
	SectorEducation      Sector = "education"
	SectorHealth         Sector = "health"
	SectorHousing        Sector = "housing"
	SectorMSME           Sector = "msme"
	SectorWomenChild     Sector = "women_child"
	SectorEmployment     Sector = "employment"
	SectorSocialWelfare  Sector = "social_welfare"
	SectorInfrastructure Sector = "infrastructure"
	SectorOther          Sector = "other"
)

// Sectors lists all valid sectors, in display order.
func Sectors() []Sector {
	return []Sector{
		SectorAgriculture, SectorEducation, SectorHealth, SectorHousing,
		SectorMSME, SectorWomenChild, SectorEmployment, SectorSocialWelfare,
		SectorInfrastructure, SectorOther,
	}
}

// Status marks whether citizens can currently apply to a scheme.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Wildcard admits any value when present in a rule's occupation or category
// set.
const Wildcard = "all"

// Rules is the eligibility predicate bundle attached to a scheme. A closed
// schema with named optional fields: a zero MinAge / nil MaxAge (and so on)
// means no constraint on that axis.
type Rules struct {
	MinAge           int       `json:"min_age"`
	MaxAge           *int      `json:"max_age,omitempty"`
	Gender           id.Gender `json:"gender"`
	MinIncome        int64     `json:"min_income"`
	MaxIncome        *int64    `json:"max_income,omitempty"`
	Occupations      []string  `json:"occupations"`
	Categories       []string  `json:"categories"`
	BeneficiaryTypes []string  `json:"beneficiary_types,omitempty"`
}

// AdmitsAnyOccupation reports whether the occupation set carries the wildcard
// (or is empty, which is treated the same).
func (r Rules) AdmitsAnyOccupation() bool { return admitsAny(r.Occupations) }

// AdmitsAnyCategory reports whether the category set carries the wildcard.
func (r Rules) AdmitsAnyCategory() bool { return admitsAny(r.Categories) }

func admitsAny(set []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, v := range set {
		if v == Wildcard {
			return true
		}
	}
	return false
}

// Amendment records one administrative change to a scheme. The log is
// append-only.
type Amendment struct {
	At      time.Time `json:"at"`
	Summary string    `json:"summary"`
	Actor   string    `json:"actor"`
}

// Scheme is a sector-tagged benefit scheme with its eligibility rules.
// BenefitAmount is in whole currency units.
type Scheme struct {
	ID                id.SchemeID
	Name              string
	Sector            Sector
	BenefitAmount     int64
	BenefitType       string
	Eligibility       Rules
	RequiredDocuments []string
	Status            Status
	Amendments        []Amendment
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsActive reports whether citizens can apply to the scheme.
func (s Scheme) IsActive() bool { return s.Status == StatusActive }

func validSector(s Sector) bool {
	for _, known := range Sectors() {
		if s == known {
			return true
		}
	}
	return false
}
