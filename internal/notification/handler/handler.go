// Package handler exposes the notification inbox over HTTP. All routes act
// on the authenticated caller's own notifications.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"janseva/internal/notification"
	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/httputil"
	"janseva/pkg/requestcontext"
)

// Service defines the inbox operations the handler needs.
type Service interface {
	ListByCitizen(ctx context.Context, citizenID id.CitizenID) ([]notification.Notification, error)
	MarkRead(ctx context.Context, notificationID id.NotificationID) error
	MarkAllRead(ctx context.Context, citizenID id.CitizenID) error
	UnreadCount(ctx context.Context, citizenID id.CitizenID) (int, error)
	Delete(ctx context.Context, notificationID id.NotificationID) error
}

// Handler handles notification inbox endpoints.
type Handler struct {
	logger        *slog.Logger
	notifications Service
}

func New(notifications Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:        logger,
		notifications: notifications,
	}
}

// Register registers the notification routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/notifications", h.handleList)
	r.Get("/notifications/unread-count", h.handleUnreadCount)
	r.Post("/notifications/read-all", h.handleReadAll)
	r.Post("/notifications/{notificationID}/read", h.handleRead)
	r.Delete("/notifications/{notificationID}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	citizenID, ok := h.caller(w, r)
	if !ok {
		return
	}
	notifications, err := h.notifications.ListByCitizen(r.Context(), citizenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if notifications == nil {
		notifications = []notification.Notification{}
	}
	httputil.WriteJSON(w, http.StatusOK, notifications)
}

func (h *Handler) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	citizenID, ok := h.caller(w, r)
	if !ok {
		return
	}
	count, err := h.notifications.UnreadCount(r.Context(), citizenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"unread": count})
}

func (h *Handler) handleReadAll(w http.ResponseWriter, r *http.Request) {
	citizenID, ok := h.caller(w, r)
	if !ok {
		return
	}
	if err := h.notifications.MarkAllRead(r.Context(), citizenID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRead(w http.ResponseWriter, r *http.Request) {
	notificationID, err := id.ParseNotificationID(chi.URLParam(r, "notificationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid notification id"))
		return
	}
	if err := h.notifications.MarkRead(r.Context(), notificationID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	notificationID, err := id.ParseNotificationID(chi.URLParam(r, "notificationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid notification id"))
		return
	}
	if err := h.notifications.Delete(r.Context(), notificationID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (id.CitizenID, bool) {
	citizenID := requestcontext.CitizenID(r.Context())
	if citizenID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.CitizenID{}, false
	}
	return citizenID, true
}
