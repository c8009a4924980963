package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"janseva/internal/application"
	"janseva/internal/notification"
	"janseva/internal/payment/metrics"
	"janseva/internal/scheme"
	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/audit"
	"janseva/pkg/platform/locking"
	"janseva/pkg/platform/sentinel"
	"janseva/pkg/requestcontext"
)

const (
	// DefaultSettleDelay is how long a payment sits in processing before
	// the simulator resolves it.
	DefaultSettleDelay = 2 * time.Second

	// DefaultSuccessRate is the probability a settlement attempt succeeds.
	DefaultSuccessRate = 0.95

	failureNote = "bank details verification required"
	retryNote   = "Retry initiated"
)

// Applications resolves the application a payment disburses for.
type Applications interface {
	Get(ctx context.Context, appID id.ApplicationID) (application.Application, error)
}

// Catalog resolves schemes for amount and naming.
type Catalog interface {
	Get(ctx context.Context, schemeID id.SchemeID) (scheme.Scheme, error)
}

// Notifier records citizen-facing notifications.
type Notifier interface {
	Notify(ctx context.Context, citizenID id.CitizenID, in notification.Input) (notification.Notification, error)
}

// Source supplies the randomness for method selection and settlement
// outcomes. Tests inject fixed draws to make outcomes deterministic.
type Source interface {
	Float64() float64
}

type cryptoless struct{}

func (cryptoless) Float64() float64 { return rand.Float64() }

// Service simulates benefit disbursement. Initiation freezes the amount and
// picks a method, then a scheduled settlement attempt resolves the payment
// to paid or failed. Failed payments stay failed until an explicit retry
// moves them back to processing; there is no retry limit.
//
// At most one payment ever exists per application. Initiate is idempotent,
// so a repeated approval side effect cannot double-disburse.
type Service struct {
	store       Store
	apps        Applications
	catalog     Catalog
	notifier    Notifier
	auditor     *audit.Publisher
	metrics     *metrics.Metrics
	locks       *locking.Keyed
	tracer      trace.Tracer
	scheduler   Scheduler
	src         Source
	logger      *slog.Logger
	settleDelay time.Duration
	successRate float64
}

// Option adjusts simulator behaviour.
type Option func(*Service)

// WithScheduler replaces the wall-clock timer scheduler.
func WithScheduler(sch Scheduler) Option {
	return func(s *Service) { s.scheduler = sch }
}

// WithSource replaces the randomness source.
func WithSource(src Source) Option {
	return func(s *Service) { s.src = src }
}

// WithSettleDelay overrides the processing duration.
func WithSettleDelay(d time.Duration) Option {
	return func(s *Service) { s.settleDelay = d }
}

// WithSuccessRate overrides the settlement success probability.
func WithSuccessRate(p float64) Option {
	return func(s *Service) { s.successRate = p }
}

// WithLogger replaces the logger used by scheduled settlements.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(
	store Store,
	apps Applications,
	catalog Catalog,
	notifier Notifier,
	auditor *audit.Publisher,
	m *metrics.Metrics,
	opts ...Option,
) *Service {
	s := &Service{
		store:       store,
		apps:        apps,
		catalog:     catalog,
		notifier:    notifier,
		auditor:     auditor,
		metrics:     m,
		locks:       locking.NewKeyed(),
		tracer:      otel.Tracer("janseva/payment"),
		scheduler:   TimerScheduler{},
		src:         cryptoless{},
		logger:      slog.Default(),
		settleDelay: DefaultSettleDelay,
		successRate: DefaultSuccessRate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initiate creates the payment for an approved application and schedules its
// settlement. If a payment already exists for the application it is returned
// unchanged.
func (s *Service) Initiate(ctx context.Context, appID id.ApplicationID) (Payment, error) {
	ctx, span := s.tracer.Start(ctx, "payment.Initiate")
	defer span.End()

	unlock := s.locks.Lock("app:" + appID.String())
	defer unlock()

	if existing, err := s.store.FindByApplication(ctx, appID); err == nil {
		return existing, nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return Payment{}, dErrors.Wrap(err, dErrors.CodeInternal, "find payment")
	}

	app, err := s.apps.Get(ctx, appID)
	if err != nil {
		return Payment{}, err
	}
	sc, err := s.catalog.Get(ctx, app.SchemeID)
	if err != nil {
		return Payment{}, err
	}

	now := requestcontext.Now(ctx)
	method := s.pickMethod()
	p := Payment{
		ID:            id.NewPaymentID(),
		ApplicationID: app.ID,
		CitizenID:     app.CitizenID,
		SchemeID:      app.SchemeID,
		Amount:        sc.BenefitAmount,
		Status:        StatusProcessing,
		Method:        method,
		InitiatedAt:   now,
		Transactions: []TransactionEntry{{
			Status: StatusProcessing,
			At:     now,
			Note:   fmt.Sprintf("Payment initiated via %s", method),
		}},
	}
	if err := s.store.Save(ctx, p); err != nil {
		return Payment{}, dErrors.Wrap(err, dErrors.CodeInternal, "save payment")
	}

	if err := s.auditor.Emit(ctx, audit.Event{
		CitizenID: p.CitizenID,
		Action:    audit.EventPaymentInitiated,
		Subject:   p.ID.String(),
	}); err != nil {
		return Payment{}, err
	}

	s.metrics.IncInitiated()
	s.scheduleSettlement(p.ID)
	return p, nil
}

// Retry moves a failed payment back to processing and schedules a fresh
// settlement attempt. Payments in any other status cannot be retried.
func (s *Service) Retry(ctx context.Context, paymentID id.PaymentID) (Payment, error) {
	ctx, span := s.tracer.Start(ctx, "payment.Retry")
	defer span.End()

	unlock := s.locks.Lock(paymentID.String())
	defer unlock()

	p, err := s.get(ctx, paymentID)
	if err != nil {
		return Payment{}, err
	}
	if p.Status != StatusFailed {
		return Payment{}, dErrors.New(dErrors.CodeInvalidTransition,
			fmt.Sprintf("payment is %s; only failed payments can be retried", p.Status))
	}

	now := requestcontext.Now(ctx)
	p.Status = StatusProcessing
	p.Transactions = append(p.Transactions, TransactionEntry{
		Status: StatusProcessing,
		At:     now,
		Note:   retryNote,
	})
	if err := s.store.Save(ctx, p); err != nil {
		return Payment{}, dErrors.Wrap(err, dErrors.CodeInternal, "save payment")
	}

	if err := s.auditor.Emit(ctx, audit.Event{
		CitizenID: p.CitizenID,
		Action:    audit.EventPaymentRetried,
		Subject:   p.ID.String(),
	}); err != nil {
		return Payment{}, err
	}

	s.metrics.IncRetry()
	s.scheduleSettlement(p.ID)
	return p, nil
}

// Settle resolves one settlement attempt. It is a no-op unless the payment
// is still processing, so a stale timer firing after a manual resolution
// cannot corrupt the record.
func (s *Service) Settle(ctx context.Context, paymentID id.PaymentID) (Payment, error) {
	ctx, span := s.tracer.Start(ctx, "payment.Settle")
	defer span.End()

	unlock := s.locks.Lock(paymentID.String())
	defer unlock()

	p, err := s.get(ctx, paymentID)
	if err != nil {
		return Payment{}, err
	}
	if p.Status != StatusProcessing {
		return p, nil
	}

	sc, err := s.catalog.Get(ctx, p.SchemeID)
	if err != nil {
		return Payment{}, err
	}

	now := requestcontext.Now(ctx)
	if s.src.Float64() < s.successRate {
		p.Status = StatusPaid
		p.CompletedAt = &now
		p.Transactions = append(p.Transactions, TransactionEntry{
			Status: StatusPaid,
			At:     now,
			Note:   "Payment completed",
		})
		if err := s.store.Save(ctx, p); err != nil {
			return Payment{}, dErrors.Wrap(err, dErrors.CodeInternal, "save payment")
		}

		if _, err := s.notifier.Notify(ctx, p.CitizenID, notification.Input{
			Title:    "Benefit disbursed",
			Message:  fmt.Sprintf("Your benefit of ₹%d for %s has been disbursed via %s.", p.Amount, sc.Name, p.Method),
			Severity: notification.SeveritySuccess,
			Link:     "/payments/" + p.ID.String(),
		}); err != nil {
			return Payment{}, err
		}
		if err := s.auditor.Emit(ctx, audit.Event{
			CitizenID: p.CitizenID,
			Action:    audit.EventPaymentSettled,
			Subject:   p.ID.String(),
		}); err != nil {
			return Payment{}, err
		}
		s.metrics.IncSettlement(string(StatusPaid))
		return p, nil
	}

	p.Status = StatusFailed
	p.Transactions = append(p.Transactions, TransactionEntry{
		Status: StatusFailed,
		At:     now,
		Note:   failureNote,
	})
	if err := s.store.Save(ctx, p); err != nil {
		return Payment{}, dErrors.Wrap(err, dErrors.CodeInternal, "save payment")
	}

	if _, err := s.notifier.Notify(ctx, p.CitizenID, notification.Input{
		Title:    "Payment failed",
		Message:  fmt.Sprintf("Your benefit payment of ₹%d for %s could not be completed: %s.", p.Amount, sc.Name, failureNote),
		Severity: notification.SeverityDanger,
		Link:     "/payments/" + p.ID.String(),
	}); err != nil {
		return Payment{}, err
	}
	if err := s.auditor.Emit(ctx, audit.Event{
		CitizenID: p.CitizenID,
		Action:    audit.EventPaymentFailed,
		Subject:   p.ID.String(),
		Reason:    failureNote,
	}); err != nil {
		return Payment{}, err
	}
	s.metrics.IncSettlement(string(StatusFailed))
	return p, nil
}

// Get returns one payment or a not_found domain error.
func (s *Service) Get(ctx context.Context, paymentID id.PaymentID) (Payment, error) {
	return s.get(ctx, paymentID)
}

// GetByApplication returns the payment for an application, if one has been
// initiated.
func (s *Service) GetByApplication(ctx context.Context, appID id.ApplicationID) (Payment, error) {
	p, err := s.store.FindByApplication(ctx, appID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Payment{}, dErrors.New(dErrors.CodeNotFound, "no payment for application")
	}
	if err != nil {
		return Payment{}, dErrors.Wrap(err, dErrors.CodeInternal, "find payment")
	}
	return p, nil
}

// ListByCitizen returns a citizen's payments, newest first.
func (s *Service) ListByCitizen(ctx context.Context, citizenID id.CitizenID) ([]Payment, error) {
	return s.store.ListByCitizen(ctx, citizenID)
}

func (s *Service) scheduleSettlement(paymentID id.PaymentID) {
	s.scheduler.Schedule(paymentID, s.settleDelay, func() {
		if _, err := s.Settle(context.Background(), paymentID); err != nil {
			s.logger.Error("payment settlement failed",
				slog.String("payment_id", paymentID.String()),
				slog.Any("error", err))
		}
	})
}

func (s *Service) pickMethod() Method {
	i := int(s.src.Float64() * float64(len(methods)))
	if i >= len(methods) {
		i = len(methods) - 1
	}
	return methods[i]
}

func (s *Service) get(ctx context.Context, paymentID id.PaymentID) (Payment, error) {
	p, err := s.store.FindByID(ctx, paymentID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Payment{}, dErrors.New(dErrors.CodeNotFound, "payment not found")
	}
	if err != nil {
		return Payment{}, dErrors.Wrap(err, dErrors.CodeInternal, "find payment")
	}
	return p, nil
}
