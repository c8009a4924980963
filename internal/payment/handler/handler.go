// Package handler exposes payment records and the retry action over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"janseva/internal/payment"
	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/httputil"
	"janseva/pkg/requestcontext"
)

// Service defines the settlement operations the handler needs.
type Service interface {
	Retry(ctx context.Context, paymentID id.PaymentID) (payment.Payment, error)
	Get(ctx context.Context, paymentID id.PaymentID) (payment.Payment, error)
	GetByApplication(ctx context.Context, appID id.ApplicationID) (payment.Payment, error)
	ListByCitizen(ctx context.Context, citizenID id.CitizenID) ([]payment.Payment, error)
}

// Handler handles payment endpoints.
type Handler struct {
	logger   *slog.Logger
	payments Service
}

func New(payments Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		payments: payments,
	}
}

// Register registers the payment routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/payments", h.handleList)
	r.Get("/payments/{paymentID}", h.handleGet)
	r.Post("/payments/{paymentID}/retry", h.handleRetry)
	r.Get("/applications/{applicationID}/payment", h.handleGetByApplication)
}

type paymentResponse struct {
	ID            string                     `json:"id"`
	ApplicationID string                     `json:"application_id"`
	CitizenID     string                     `json:"citizen_id"`
	SchemeID      string                     `json:"scheme_id"`
	Amount        int64                      `json:"amount"`
	Status        payment.Status             `json:"status"`
	Method        payment.Method             `json:"method"`
	Transactions  []payment.TransactionEntry `json:"transactions"`
	InitiatedAt   time.Time                  `json:"initiated_at"`
	CompletedAt   *time.Time                 `json:"completed_at,omitempty"`
}

func toPaymentResponse(p payment.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID.String(),
		ApplicationID: p.ApplicationID.String(),
		CitizenID:     p.CitizenID.String(),
		SchemeID:      p.SchemeID.String(),
		Amount:        p.Amount,
		Status:        p.Status,
		Method:        p.Method,
		Transactions:  p.Transactions,
		InitiatedAt:   p.InitiatedAt,
		CompletedAt:   p.CompletedAt,
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	paymentID, err := id.ParsePaymentID(chi.URLParam(r, "paymentID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid payment id"))
		return
	}
	p, err := h.payments.Get(r.Context(), paymentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPaymentResponse(p))
}

func (h *Handler) handleGetByApplication(w http.ResponseWriter, r *http.Request) {
	appID, err := id.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid application id"))
		return
	}
	p, err := h.payments.GetByApplication(r.Context(), appID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPaymentResponse(p))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	citizenID := requestcontext.CitizenID(ctx)
	if citizenID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	payments, err := h.payments.ListByCitizen(ctx, citizenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleRetry(w http.ResponseWriter, r *http.Request) {
	paymentID, err := id.ParsePaymentID(chi.URLParam(r, "paymentID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid payment id"))
		return
	}
	p, err := h.payments.Retry(r.Context(), paymentID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "payment retry rejected",
			"payment_id", paymentID.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, toPaymentResponse(p))
}
