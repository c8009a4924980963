// Package handler exposes the citizen profile and scheme discovery
// endpoints. Identity comes from the bearer token; citizens can only read
// and write their own profile.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"janseva/internal/citizen"
	"janseva/internal/eligibility"
	"janseva/internal/scheme"
	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/httputil"
	"janseva/pkg/requestcontext"
)

// Service defines the profile operations the handler needs.
type Service interface {
	Upsert(ctx context.Context, profile citizen.Profile) (citizen.Profile, error)
	Get(ctx context.Context, citizenID id.CitizenID) (citizen.Profile, error)
}

// Catalog lists active schemes for discovery.
type Catalog interface {
	ListActive(ctx context.Context) ([]scheme.Scheme, error)
}

// Handler handles citizen profile and eligibility endpoints.
type Handler struct {
	logger   *slog.Logger
	citizens Service
	catalog  Catalog
}

func New(citizens Service, catalog Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		citizens: citizens,
		catalog:  catalog,
	}
}

// Register registers the citizen routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/citizens/me/profile", h.handleGetProfile)
	r.Put("/citizens/me/profile", h.handlePutProfile)
	r.Get("/citizens/me/eligibility", h.handleEligibility)
}

type profileRequest struct {
	FullName         string     `json:"full_name"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           id.Gender  `json:"gender"`
	Occupation       string     `json:"occupation"`
	AnnualIncome     *int64     `json:"annual_income"`
	Category         string     `json:"category"`
	BeneficiaryTypes []string   `json:"beneficiary_types"`
}

type profileResponse struct {
	ID               string     `json:"id"`
	FullName         string     `json:"full_name"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Gender           id.Gender  `json:"gender,omitempty"`
	Occupation       string     `json:"occupation,omitempty"`
	AnnualIncome     *int64     `json:"annual_income,omitempty"`
	Category         string     `json:"category,omitempty"`
	BeneficiaryTypes []string   `json:"beneficiary_types,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func toProfileResponse(p citizen.Profile) profileResponse {
	return profileResponse{
		ID:               p.ID.String(),
		FullName:         p.FullName,
		DateOfBirth:      p.DateOfBirth,
		Gender:           p.Gender,
		Occupation:       p.Occupation,
		AnnualIncome:     p.AnnualIncome,
		Category:         p.Category,
		BeneficiaryTypes: p.BeneficiaryTypes,
		UpdatedAt:        p.UpdatedAt,
	}
}

// eligibleScheme is the discovery listing entry. It is intentionally
// smaller than the full catalog response.
type eligibleScheme struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Sector        scheme.Sector `json:"sector"`
	BenefitAmount int64         `json:"benefit_amount"`
	BenefitType   string        `json:"benefit_type"`
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	citizenID := requestcontext.CitizenID(ctx)
	if citizenID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	profile, err := h.citizens.Get(ctx, citizenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (h *Handler) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	citizenID := requestcontext.CitizenID(ctx)
	if citizenID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.Decode[profileRequest](w, r)
	if !ok {
		return
	}

	profile, err := h.citizens.Upsert(ctx, citizen.Profile{
		ID:               citizenID,
		FullName:         req.FullName,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		Occupation:       req.Occupation,
		AnnualIncome:     req.AnnualIncome,
		Category:         req.Category,
		BeneficiaryTypes: req.BeneficiaryTypes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "profile update rejected",
			"citizen_id", citizenID.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

// handleEligibility filters active schemes down to those the caller's
// profile qualifies for, preserving catalog order. A citizen without a
// stored profile gets an empty list, not an error.
func (h *Handler) handleEligibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	citizenID := requestcontext.CitizenID(ctx)
	if citizenID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	profile, err := h.citizens.Get(ctx, citizenID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			httputil.WriteJSON(w, http.StatusOK, []eligibleScheme{})
			return
		}
		httputil.WriteError(w, err)
		return
	}

	active, err := h.catalog.ListActive(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	matches := eligibility.FilterEligible(profile, active, requestcontext.Now(ctx))
	out := make([]eligibleScheme, 0, len(matches))
	for _, sc := range matches {
		out = append(out, eligibleScheme{
			ID:            sc.ID.String(),
			Name:          sc.Name,
			Sector:        sc.Sector,
			BenefitAmount: sc.BenefitAmount,
			BenefitType:   sc.BenefitType,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
