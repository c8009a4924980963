package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"janseva/internal/application/metrics"
	"janseva/internal/application/ports"
	"janseva/internal/notification"
	"janseva/internal/scheme"
	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/audit"
	"janseva/pkg/platform/locking"
	"janseva/pkg/platform/sentinel"
	"janseva/pkg/requestcontext"
)

// Catalog resolves schemes at submission time.
type Catalog interface {
	Get(ctx context.Context, schemeID id.SchemeID) (scheme.Scheme, error)
}

// Service is the application lifecycle state machine. A status transition
// is not complete until its side effects (notification emission, payment
// initiation) have been applied; side-effect failures therefore propagate to
// the caller instead of being swallowed.
//
// Mutations of a single application are serialized with a per-id lock;
// operations on different applications proceed in parallel.
type Service struct {
	store    Store
	catalog  Catalog
	notifier ports.Notifier
	payments ports.PaymentInitiator
	auditor  *audit.Publisher
	metrics  *metrics.Metrics
	locks    *locking.Keyed
	tracer   trace.Tracer
}

func NewService(
	store Store,
	catalog Catalog,
	notifier ports.Notifier,
	payments ports.PaymentInitiator,
	auditor *audit.Publisher,
	m *metrics.Metrics,
) *Service {
	return &Service{
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		payments: payments,
		auditor:  auditor,
		metrics:  m,
		locks:    locking.NewKeyed(),
		tracer:   otel.Tracer("janseva/application"),
	}
}

// Submit creates a new pending application against an active scheme, records
// the opening history entry, and notifies the citizen.
func (s *Service) Submit(ctx context.Context, citizenID id.CitizenID, schemeID id.SchemeID, formData map[string]string) (Application, error) {
	if citizenID.IsNil() {
		return Application{}, dErrors.New(dErrors.CodeValidation, "citizen id is required")
	}

	sc, err := s.catalog.Get(ctx, schemeID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return Application{}, dErrors.New(dErrors.CodeValidation, "unknown scheme")
		}
		return Application{}, err
	}
	if !sc.IsActive() {
		return Application{}, dErrors.New(dErrors.CodeValidation, "scheme is not accepting applications")
	}

	now := requestcontext.Now(ctx)
	app := Application{
		ID:          id.NewApplicationID(),
		CitizenID:   citizenID,
		SchemeID:    schemeID,
		Status:      StatusPending,
		SubmittedAt: now,
		StatusHistory: []HistoryEntry{{
			Status: StatusPending,
			At:     now,
			Note:   "Application submitted",
			Actor:  requestcontext.Actor(ctx),
		}},
		FormData: formData,
	}
	if err := s.store.Save(ctx, app); err != nil {
		return Application{}, dErrors.Wrap(err, dErrors.CodeInternal, "save application")
	}

	if _, err := s.notifier.Notify(ctx, citizenID, notification.Input{
		Title:    "Application submitted",
		Message:  fmt.Sprintf("Your application for %s has been submitted and is pending review.", sc.Name),
		Severity: notification.SeverityInfo,
		Link:     "/applications/" + app.ID.String(),
	}); err != nil {
		return Application{}, err
	}

	if err := s.auditor.Emit(ctx, audit.Event{
		CitizenID: citizenID,
		Action:    audit.EventApplicationSubmitted,
		Subject:   app.ID.String(),
	}); err != nil {
		return Application{}, err
	}

	s.metrics.IncSubmitted()
	return app, nil
}

// Transition appends a status history entry and applies the side effects
// mandated for the new status. It returns before any triggered settlement
// completes; the notification stream, not the return value, carries the
// final payment outcome.
func (s *Service) Transition(ctx context.Context, appID id.ApplicationID, newStatus Status, note string) (Application, error) {
	if strings.TrimSpace(string(newStatus)) == "" {
		return Application{}, dErrors.New(dErrors.CodeValidation, "target status is required")
	}

	ctx, span := s.tracer.Start(ctx, "application.Transition")
	defer span.End()

	unlock := s.locks.Lock(appID.String())
	defer unlock()

	app, err := s.get(ctx, appID)
	if err != nil {
		return Application{}, err
	}

	now := requestcontext.Now(ctx)
	actor := requestcontext.Actor(ctx)
	app.Status = newStatus
	app.StatusHistory = append(app.StatusHistory, HistoryEntry{
		Status: newStatus,
		At:     now,
		Note:   note,
		Actor:  actor,
	})
	if err := s.store.Save(ctx, app); err != nil {
		return Application{}, dErrors.Wrap(err, dErrors.CodeInternal, "save application")
	}

	if err := s.applySideEffects(ctx, app, note); err != nil {
		return Application{}, err
	}

	// Operational statuses are free-form, so they share one metric label to
	// keep the cardinality bounded.
	label := string(newStatus)
	if !KnownStatus(newStatus) {
		label = "other"
	}
	s.metrics.IncTransition(label)
	return app, nil
}

// applySideEffects emits the notification defined for the new status and,
// on approval, triggers payment initiation exactly once per application
// (the initiator is idempotent). Statuses outside the defined set record
// history only.
func (s *Service) applySideEffects(ctx context.Context, app Application, note string) error {
	sc, err := s.catalog.Get(ctx, app.SchemeID)
	if err != nil {
		return err
	}
	link := "/applications/" + app.ID.String()

	switch app.Status {
	case StatusUnderReview:
		if _, err := s.notifier.Notify(ctx, app.CitizenID, notification.Input{
			Title:    "Application under review",
			Message:  fmt.Sprintf("Your application for %s is now under review.", sc.Name),
			Severity: notification.SeverityInfo,
			Link:     link,
		}); err != nil {
			return err
		}
		return s.auditor.Emit(ctx, audit.Event{
			CitizenID: app.CitizenID,
			Action:    audit.EventApplicationReviewed,
			Subject:   app.ID.String(),
		})

	case StatusApproved:
		if _, err := s.notifier.Notify(ctx, app.CitizenID, notification.Input{
			Title:    "Application approved",
			Message:  fmt.Sprintf("Your application for %s has been approved. Benefit disbursement has been initiated.", sc.Name),
			Severity: notification.SeveritySuccess,
			Link:     link,
		}); err != nil {
			return err
		}
		if err := s.payments.Initiate(ctx, app.ID); err != nil {
			return err
		}
		return s.auditor.Emit(ctx, audit.Event{
			CitizenID: app.CitizenID,
			Action:    audit.EventApplicationApproved,
			Subject:   app.ID.String(),
		})

	case StatusRejected:
		message := fmt.Sprintf("Your application for %s has been rejected.", sc.Name)
		if note != "" {
			message += " " + note
		}
		if _, err := s.notifier.Notify(ctx, app.CitizenID, notification.Input{
			Title:    "Application rejected",
			Message:  message,
			Severity: notification.SeverityDanger,
			Link:     link,
		}); err != nil {
			return err
		}
		return s.auditor.Emit(ctx, audit.Event{
			CitizenID: app.CitizenID,
			Action:    audit.EventApplicationRejected,
			Subject:   app.ID.String(),
			Reason:    note,
		})
	}

	// No notification is defined for other statuses; the history entry is
	// the only record.
	return nil
}

// AddReviewNote appends reviewer commentary without changing status and
// without notifying the citizen.
func (s *Service) AddReviewNote(ctx context.Context, appID id.ApplicationID, note string) (Application, error) {
	if strings.TrimSpace(note) == "" {
		return Application{}, dErrors.New(dErrors.CodeValidation, "review note must not be empty")
	}

	unlock := s.locks.Lock(appID.String())
	defer unlock()

	app, err := s.get(ctx, appID)
	if err != nil {
		return Application{}, err
	}

	app.ReviewNotes = append(app.ReviewNotes, ReviewNote{
		Note:     note,
		At:       requestcontext.Now(ctx),
		Reviewer: requestcontext.Actor(ctx),
	})
	if err := s.store.Save(ctx, app); err != nil {
		return Application{}, dErrors.Wrap(err, dErrors.CodeInternal, "save application")
	}

	if err := s.auditor.Emit(ctx, audit.Event{
		CitizenID: app.CitizenID,
		Action:    audit.EventReviewNoteAdded,
		Subject:   app.ID.String(),
	}); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Get returns one application or a not_found domain error.
func (s *Service) Get(ctx context.Context, appID id.ApplicationID) (Application, error) {
	return s.get(ctx, appID)
}

// ListByCitizen returns a citizen's applications, newest first.
func (s *Service) ListByCitizen(ctx context.Context, citizenID id.CitizenID) ([]Application, error) {
	return s.store.ListByCitizen(ctx, citizenID)
}

// ListByStatus returns the applications currently in the given status,
// newest first. Officer work queues are built from this.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Application, error) {
	return s.store.ListByStatus(ctx, status)
}

func (s *Service) get(ctx context.Context, appID id.ApplicationID) (Application, error) {
	app, err := s.store.FindByID(ctx, appID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Application{}, dErrors.New(dErrors.CodeNotFound, "application not found")
	}
	if err != nil {
		return Application{}, dErrors.Wrap(err, dErrors.CodeInternal, "find application")
	}
	return app, nil
}
