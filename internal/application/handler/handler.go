// Package handler exposes the application lifecycle over HTTP. Citizens
// submit and read their own applications; transitions and review notes are
// officer actions.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"janseva/internal/application"
	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/httputil"
	"janseva/pkg/requestcontext"
)

// Service defines the lifecycle operations the handler needs.
type Service interface {
	Submit(ctx context.Context, citizenID id.CitizenID, schemeID id.SchemeID, formData map[string]string) (application.Application, error)
	Transition(ctx context.Context, appID id.ApplicationID, newStatus application.Status, note string) (application.Application, error)
	AddReviewNote(ctx context.Context, appID id.ApplicationID, note string) (application.Application, error)
	Get(ctx context.Context, appID id.ApplicationID) (application.Application, error)
	ListByCitizen(ctx context.Context, citizenID id.CitizenID) ([]application.Application, error)
	ListByStatus(ctx context.Context, status application.Status) ([]application.Application, error)
}

// Handler handles application lifecycle endpoints.
type Handler struct {
	logger  *slog.Logger
	apps    Service
	officer func(http.Handler) http.Handler
}

// New creates an application Handler. officerOnly guards transition and
// review note routes.
func New(apps Service, logger *slog.Logger, officerOnly func(http.Handler) http.Handler) *Handler {
	return &Handler{
		logger:  logger,
		apps:    apps,
		officer: officerOnly,
	}
}

// Register registers the application routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/applications", h.handleSubmit)
	r.Get("/applications", h.handleList)
	r.Get("/applications/{applicationID}", h.handleGet)

	r.Group(func(r chi.Router) {
		r.Use(h.officer)
		r.Post("/applications/{applicationID}/transition", h.handleTransition)
		r.Post("/applications/{applicationID}/notes", h.handleAddNote)
	})
}

type submitRequest struct {
	SchemeID string            `json:"scheme_id"`
	FormData map[string]string `json:"form_data"`
}

type transitionRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type noteRequest struct {
	Note string `json:"note"`
}

type applicationResponse struct {
	ID            string                     `json:"id"`
	CitizenID     string                     `json:"citizen_id"`
	SchemeID      string                     `json:"scheme_id"`
	Status        application.Status         `json:"status"`
	SubmittedAt   time.Time                  `json:"submitted_at"`
	StatusHistory []application.HistoryEntry `json:"status_history"`
	ReviewNotes   []application.ReviewNote   `json:"review_notes,omitempty"`
	FormData      map[string]string          `json:"form_data,omitempty"`
}

func toApplicationResponse(app application.Application) applicationResponse {
	return applicationResponse{
		ID:            app.ID.String(),
		CitizenID:     app.CitizenID.String(),
		SchemeID:      app.SchemeID.String(),
		Status:        app.Status,
		SubmittedAt:   app.SubmittedAt,
		StatusHistory: app.StatusHistory,
		ReviewNotes:   app.ReviewNotes,
		FormData:      app.FormData,
	}
}

func toApplicationResponses(apps []application.Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplicationResponse(app))
	}
	return out
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	citizenID := requestcontext.CitizenID(ctx)
	if citizenID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.Decode[submitRequest](w, r)
	if !ok {
		return
	}
	schemeID, err := id.ParseSchemeID(req.SchemeID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid scheme id"))
		return
	}

	app, err := h.apps.Submit(ctx, citizenID, schemeID, req.FormData)
	if err != nil {
		h.logger.WarnContext(ctx, "application submission rejected",
			"citizen_id", citizenID.String(),
			"scheme_id", schemeID.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toApplicationResponse(app))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	appID, err := id.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid application id"))
		return
	}

	app, err := h.apps.Get(r.Context(), appID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

// handleList returns the caller's own applications, or a status work queue
// when ?status= is supplied.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if status := r.URL.Query().Get("status"); status != "" {
		apps, err := h.apps.ListByStatus(ctx, application.Status(status))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, toApplicationResponses(apps))
		return
	}

	citizenID := requestcontext.CitizenID(ctx)
	if citizenID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	apps, err := h.apps.ListByCitizen(ctx, citizenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponses(apps))
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	appID, err := id.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid application id"))
		return
	}
	req, ok := httputil.Decode[transitionRequest](w, r)
	if !ok {
		return
	}

	app, err := h.apps.Transition(r.Context(), appID, application.Status(req.Status), req.Note)
	if err != nil {
		h.logger.WarnContext(r.Context(), "transition rejected",
			"application_id", appID.String(),
			"status", req.Status,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

func (h *Handler) handleAddNote(w http.ResponseWriter, r *http.Request) {
	appID, err := id.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid application id"))
		return
	}
	req, ok := httputil.Decode[noteRequest](w, r)
	if !ok {
		return
	}

	app, err := h.apps.AddReviewNote(r.Context(), appID, req.Note)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}
