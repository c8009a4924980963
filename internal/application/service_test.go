package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"janseva/internal/application/metrics"
	"janseva/internal/application/ports/mocks"
	"janseva/internal/notification"
	"janseva/internal/scheme"
	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/audit"
	"janseva/pkg/requestcontext"
)

// ApplicationServiceSuite verifies the lifecycle state machine: history
// bookkeeping, per-status side effects, and side-effect failure propagation.
type ApplicationServiceSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockNotifier *mocks.MockNotifier
	mockPayments *mocks.MockPaymentInitiator
	auditStore   *audit.InMemoryStore
	schemes      *scheme.Service
	service      *Service
	citizen      id.CitizenID
	scheme       scheme.Scheme
	now          time.Time
}

func TestApplicationServiceSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceSuite))
}

func (s *ApplicationServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockNotifier = mocks.NewMockNotifier(s.ctrl)
	s.mockPayments = mocks.NewMockPaymentInitiator(s.ctrl)
	s.auditStore = audit.NewInMemoryStore()
	s.schemes = scheme.NewService(scheme.NewInMemoryStore(), audit.NewPublisher(audit.NewInMemoryStore()))
	s.service = NewService(
		NewInMemoryStore(),
		s.schemes,
		s.mockNotifier,
		s.mockPayments,
		audit.NewPublisher(s.auditStore),
		nil,
	)
	s.citizen = id.NewCitizenID()
	s.now = time.Date(2026, time.July, 10, 11, 0, 0, 0, time.UTC)

	sc, err := s.schemes.Create(s.ctx(), scheme.CreateInput{
		Name:          "Artisan Stipend",
		Sector:        scheme.SectorMSME,
		BenefitAmount: 6000,
		BenefitType:   "monthly",
	})
	s.Require().NoError(err)
	s.scheme = sc
}

func (s *ApplicationServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ApplicationServiceSuite) ctx() context.Context {
	ctx := requestcontext.WithTime(context.Background(), s.now)
	return requestcontext.WithActor(ctx, "Officer Rao")
}

func (s *ApplicationServiceSuite) submit() Application {
	s.mockNotifier.EXPECT().
		Notify(gomock.Any(), s.citizen, gomock.Any()).
		Return(notification.Notification{}, nil)

	app, err := s.service.Submit(s.ctx(), s.citizen, s.scheme.ID, map[string]string{"account": "0012"})
	s.Require().NoError(err)
	return app
}

func (s *ApplicationServiceSuite) TestSubmit() {
	s.Run("creates a pending application with an opening history entry", func() {
		s.mockNotifier.EXPECT().
			Notify(gomock.Any(), s.citizen, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.CitizenID, in notification.Input) (notification.Notification, error) {
				s.Equal(notification.SeverityInfo, in.Severity)
				s.Contains(in.Message, "Artisan Stipend")
				return notification.Notification{}, nil
			})

		app, err := s.service.Submit(s.ctx(), s.citizen, s.scheme.ID, nil)
		s.Require().NoError(err)

		s.Equal(StatusPending, app.Status)
		s.Require().Len(app.StatusHistory, 1)
		s.Equal(StatusPending, app.StatusHistory[0].Status)
		s.Equal("Application submitted", app.StatusHistory[0].Note)
		s.Equal(s.now, app.SubmittedAt)

		events, err := s.auditStore.ListByCitizen(s.ctx(), s.citizen)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(audit.EventApplicationSubmitted, events[0].Action)
	})

	s.Run("unknown scheme is a validation error", func() {
		_, err := s.service.Submit(s.ctx(), s.citizen, id.NewSchemeID(), nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("inactive scheme is a validation error", func() {
		_, err := s.schemes.Deactivate(s.ctx(), s.scheme.ID)
		s.Require().NoError(err)

		_, err = s.service.Submit(s.ctx(), s.citizen, s.scheme.ID, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ApplicationServiceSuite) TestTransitions() {
	s.Run("under review notifies and records history", func() {
		app := s.submit()

		s.mockNotifier.EXPECT().
			Notify(gomock.Any(), s.citizen, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.CitizenID, in notification.Input) (notification.Notification, error) {
				s.Equal(notification.SeverityInfo, in.Severity)
				s.Contains(in.Message, "under review")
				return notification.Notification{}, nil
			})

		updated, err := s.service.Transition(s.ctx(), app.ID, StatusUnderReview, "docs verified")
		s.Require().NoError(err)

		s.Equal(StatusUnderReview, updated.Status)
		s.Require().Len(updated.StatusHistory, 2)
		s.Equal("docs verified", updated.StatusHistory[1].Note)
		s.Equal("Officer Rao", updated.StatusHistory[1].Actor)
	})

	s.Run("pending can be approved directly, skipping review", func() {
		app := s.submit()

		s.mockNotifier.EXPECT().
			Notify(gomock.Any(), s.citizen, gomock.Any()).
			Return(notification.Notification{}, nil)
		s.mockPayments.EXPECT().
			Initiate(gomock.Any(), app.ID).
			Return(nil).
			Times(1)

		updated, err := s.service.Transition(s.ctx(), app.ID, StatusApproved, "")
		s.Require().NoError(err)
		s.Equal(StatusApproved, updated.Status)
	})

	s.Run("rejection carries the note in the danger notification", func() {
		app := s.submit()

		s.mockNotifier.EXPECT().
			Notify(gomock.Any(), s.citizen, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.CitizenID, in notification.Input) (notification.Notification, error) {
				s.Equal(notification.SeverityDanger, in.Severity)
				s.Contains(in.Message, "has been rejected")
				s.Contains(in.Message, "income proof missing")
				return notification.Notification{}, nil
			})

		updated, err := s.service.Transition(s.ctx(), app.ID, StatusRejected, "income proof missing")
		s.Require().NoError(err)
		s.Equal(StatusRejected, updated.Status)

		events, err := s.auditStore.ListByCitizen(s.ctx(), s.citizen)
		s.Require().NoError(err)
		last := events[len(events)-1]
		s.Equal(audit.EventApplicationRejected, last.Action)
		s.Equal("income proof missing", last.Reason)
	})

	s.Run("unlisted status records history only, no notification", func() {
		app := s.submit()

		updated, err := s.service.Transition(s.ctx(), app.ID, Status("on_hold"), "awaiting budget")
		s.Require().NoError(err)
		s.Equal(Status("on_hold"), updated.Status)
		s.Len(updated.StatusHistory, 2)
	})

	s.Run("empty status is rejected", func() {
		app := s.submit()
		_, err := s.service.Transition(s.ctx(), app.ID, "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown application returns not found", func() {
		_, err := s.service.Transition(s.ctx(), id.NewApplicationID(), StatusApproved, "")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("notifier failure propagates to the caller", func() {
		app := s.submit()

		s.mockNotifier.EXPECT().
			Notify(gomock.Any(), s.citizen, gomock.Any()).
			Return(notification.Notification{}, errors.New("inbox unavailable"))

		_, err := s.service.Transition(s.ctx(), app.ID, StatusUnderReview, "")
		s.Error(err)
	})

	s.Run("payment initiation failure propagates to the caller", func() {
		app := s.submit()

		s.mockNotifier.EXPECT().
			Notify(gomock.Any(), s.citizen, gomock.Any()).
			Return(notification.Notification{}, nil)
		s.mockPayments.EXPECT().
			Initiate(gomock.Any(), app.ID).
			Return(errors.New("settlement offline"))

		_, err := s.service.Transition(s.ctx(), app.ID, StatusApproved, "")
		s.Error(err)
	})
}

func (s *ApplicationServiceSuite) TestHistoryAppendOnly() {
	app := s.submit()

	s.mockNotifier.EXPECT().
		Notify(gomock.Any(), s.citizen, gomock.Any()).
		Return(notification.Notification{}, nil).
		Times(2)
	s.mockPayments.EXPECT().
		Initiate(gomock.Any(), app.ID).
		Return(nil)

	_, err := s.service.Transition(s.ctx(), app.ID, StatusUnderReview, "")
	s.Require().NoError(err)
	updated, err := s.service.Transition(s.ctx(), app.ID, StatusApproved, "verified")
	s.Require().NoError(err)

	s.Require().Len(updated.StatusHistory, 3)
	s.Equal(StatusPending, updated.StatusHistory[0].Status)
	s.Equal(StatusUnderReview, updated.StatusHistory[1].Status)
	s.Equal(StatusApproved, updated.StatusHistory[2].Status)
	s.Equal(updated.Status, updated.StatusHistory[len(updated.StatusHistory)-1].Status)
}

func (s *ApplicationServiceSuite) TestReviewNotes() {
	s.Run("appends without changing status or notifying", func() {
		app := s.submit()

		updated, err := s.service.AddReviewNote(s.ctx(), app.ID, "aadhaar matched")
		s.Require().NoError(err)

		s.Equal(StatusPending, updated.Status)
		s.Require().Len(updated.ReviewNotes, 1)
		s.Equal("aadhaar matched", updated.ReviewNotes[0].Note)
		s.Equal("Officer Rao", updated.ReviewNotes[0].Reviewer)
	})

	s.Run("empty note is rejected", func() {
		app := s.submit()
		_, err := s.service.AddReviewNote(s.ctx(), app.ID, "   ")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ApplicationServiceSuite) TestListing() {
	first := s.submit()
	second := s.submit()
	_ = second

	mine, err := s.service.ListByCitizen(s.ctx(), s.citizen)
	s.Require().NoError(err)
	s.Len(mine, 2)

	pending, err := s.service.ListByStatus(s.ctx(), StatusPending)
	s.Require().NoError(err)
	s.Len(pending, 2)

	s.mockNotifier.EXPECT().
		Notify(gomock.Any(), s.citizen, gomock.Any()).
		Return(notification.Notification{}, nil)
	_, err = s.service.Transition(s.ctx(), first.ID, StatusUnderReview, "")
	s.Require().NoError(err)

	pending, err = s.service.ListByStatus(s.ctx(), StatusPending)
	s.Require().NoError(err)
	s.Len(pending, 1)
}

func (s *ApplicationServiceSuite) TestKnownStatus() {
	s.True(KnownStatus(StatusPending))
	s.True(KnownStatus(StatusUnderReview))
	s.True(KnownStatus(StatusApproved))
	s.True(KnownStatus(StatusRejected))
	s.False(KnownStatus(Status("on_hold")))
	s.False(KnownStatus(Status("")))
}

func (s *ApplicationServiceSuite) TestTransitionMetricLabels() {
	m := &metrics.Metrics{
		Submitted: prometheus.NewCounter(prometheus.CounterOpts{Name: "submitted"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transitions",
		}, []string{"status"}),
	}
	svc := NewService(
		NewInMemoryStore(),
		s.schemes,
		s.mockNotifier,
		s.mockPayments,
		audit.NewPublisher(audit.NewInMemoryStore()),
		m,
	)

	s.mockNotifier.EXPECT().
		Notify(gomock.Any(), s.citizen, gomock.Any()).
		Return(notification.Notification{}, nil).
		Times(2)
	app, err := svc.Submit(s.ctx(), s.citizen, s.scheme.ID, nil)
	s.Require().NoError(err)

	_, err = svc.Transition(s.ctx(), app.ID, StatusUnderReview, "")
	s.Require().NoError(err)
	_, err = svc.Transition(s.ctx(), app.ID, Status("on_hold"), "awaiting documents")
	s.Require().NoError(err)
	_, err = svc.Transition(s.ctx(), app.ID, Status("docs_requested"), "")
	s.Require().NoError(err)

	s.Equal(1.0, promtestutil.ToFloat64(m.Transitions.WithLabelValues("under_review")))
	// Free-form operational statuses are folded into one label.
	s.Equal(2.0, promtestutil.ToFloat64(m.Transitions.WithLabelValues("other")))
}
