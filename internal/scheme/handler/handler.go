// Package handler exposes the scheme catalog over HTTP. Catalog writes are
// officer-only; reads are available to any authenticated caller.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"janseva/internal/scheme"
	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/httputil"
)

// Service defines the catalog operations the handler needs.
type Service interface {
	Create(ctx context.Context, in scheme.CreateInput) (scheme.Scheme, error)
	Amend(ctx context.Context, schemeID id.SchemeID, patch scheme.Patch) (scheme.Scheme, error)
	Deactivate(ctx context.Context, schemeID id.SchemeID) (scheme.Scheme, error)
	Reactivate(ctx context.Context, schemeID id.SchemeID) (scheme.Scheme, error)
	Get(ctx context.Context, schemeID id.SchemeID) (scheme.Scheme, error)
	List(ctx context.Context) ([]scheme.Scheme, error)
	ListActive(ctx context.Context) ([]scheme.Scheme, error)
}

// Handler handles scheme catalog endpoints.
type Handler struct {
	logger  *slog.Logger
	schemes Service
	officer func(http.Handler) http.Handler
}

// New creates a scheme Handler. officerOnly guards catalog writes.
func New(schemes Service, logger *slog.Logger, officerOnly func(http.Handler) http.Handler) *Handler {
	return &Handler{
		logger:  logger,
		schemes: schemes,
		officer: officerOnly,
	}
}

// Register registers the scheme routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/schemes", h.handleList)
	r.Get("/schemes/{schemeID}", h.handleGet)

	r.Group(func(r chi.Router) {
		r.Use(h.officer)
		r.Post("/schemes", h.handleCreate)
		r.Patch("/schemes/{schemeID}", h.handleAmend)
		r.Post("/schemes/{schemeID}/deactivate", h.handleDeactivate)
		r.Post("/schemes/{schemeID}/reactivate", h.handleReactivate)
	})
}

type createRequest struct {
	Name              string        `json:"name"`
	Sector            scheme.Sector `json:"sector"`
	BenefitAmount     int64         `json:"benefit_amount"`
	BenefitType       string        `json:"benefit_type"`
	Eligibility       scheme.Rules  `json:"eligibility"`
	RequiredDocuments []string      `json:"required_documents"`
}

type amendRequest struct {
	Name              *string        `json:"name"`
	Sector            *scheme.Sector `json:"sector"`
	BenefitAmount     *int64         `json:"benefit_amount"`
	BenefitType       *string        `json:"benefit_type"`
	Eligibility       *scheme.Rules  `json:"eligibility"`
	RequiredDocuments *[]string      `json:"required_documents"`
}

type amendmentResponse struct {
	At      time.Time `json:"at"`
	Summary string    `json:"summary"`
	Actor   string    `json:"actor"`
}

type schemeResponse struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Sector            scheme.Sector       `json:"sector"`
	BenefitAmount     int64               `json:"benefit_amount"`
	BenefitType       string              `json:"benefit_type"`
	Eligibility       scheme.Rules        `json:"eligibility"`
	RequiredDocuments []string            `json:"required_documents"`
	Status            scheme.Status       `json:"status"`
	Amendments        []amendmentResponse `json:"amendments,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func toSchemeResponse(sc scheme.Scheme) schemeResponse {
	resp := schemeResponse{
		ID:                sc.ID.String(),
		Name:              sc.Name,
		Sector:            sc.Sector,
		BenefitAmount:     sc.BenefitAmount,
		BenefitType:       sc.BenefitType,
		Eligibility:       sc.Eligibility,
		RequiredDocuments: sc.RequiredDocuments,
		Status:            sc.Status,
		CreatedAt:         sc.CreatedAt,
		UpdatedAt:         sc.UpdatedAt,
	}
	for _, a := range sc.Amendments {
		resp.Amendments = append(resp.Amendments, amendmentResponse{At: a.At, Summary: a.Summary, Actor: a.Actor})
	}
	return resp
}

func toSchemeResponses(schemes []scheme.Scheme) []schemeResponse {
	out := make([]schemeResponse, 0, len(schemes))
	for _, sc := range schemes {
		out = append(out, toSchemeResponse(sc))
	}
	return out
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[createRequest](w, r)
	if !ok {
		return
	}

	sc, err := h.schemes.Create(r.Context(), scheme.CreateInput{
		Name:              req.Name,
		Sector:            req.Sector,
		BenefitAmount:     req.BenefitAmount,
		BenefitType:       req.BenefitType,
		Eligibility:       req.Eligibility,
		RequiredDocuments: req.RequiredDocuments,
	})
	if err != nil {
		h.logger.WarnContext(r.Context(), "scheme creation rejected", "error", err.Error())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toSchemeResponse(sc))
}

func (h *Handler) handleAmend(w http.ResponseWriter, r *http.Request) {
	schemeID, err := id.ParseSchemeID(chi.URLParam(r, "schemeID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid scheme id"))
		return
	}
	req, ok := httputil.Decode[amendRequest](w, r)
	if !ok {
		return
	}

	sc, err := h.schemes.Amend(r.Context(), schemeID, scheme.Patch{
		Name:              req.Name,
		Sector:            req.Sector,
		BenefitAmount:     req.BenefitAmount,
		BenefitType:       req.BenefitType,
		Eligibility:       req.Eligibility,
		RequiredDocuments: req.RequiredDocuments,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSchemeResponse(sc))
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.schemes.Deactivate)
}

func (h *Handler) handleReactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.schemes.Reactivate)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, op func(context.Context, id.SchemeID) (scheme.Scheme, error)) {
	schemeID, err := id.ParseSchemeID(chi.URLParam(r, "schemeID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid scheme id"))
		return
	}
	sc, err := op(r.Context(), schemeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSchemeResponse(sc))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	schemeID, err := id.ParseSchemeID(chi.URLParam(r, "schemeID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid scheme id"))
		return
	}
	sc, err := h.schemes.Get(r.Context(), schemeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSchemeResponse(sc))
}

// handleList returns active schemes by default; ?all=true includes inactive
// ones for officer dashboards.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		schemes []scheme.Scheme
		err     error
	)
	if r.URL.Query().Get("all") == "true" {
		schemes, err = h.schemes.List(r.Context())
	} else {
		schemes, err = h.schemes.ListActive(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSchemeResponses(schemes))
}
