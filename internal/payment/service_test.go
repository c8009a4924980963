package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"janseva/internal/application"
	"janseva/internal/notification"
	"janseva/internal/scheme"
	id "janseva/pkg/domain"
	dErrors "janseva/pkg/domain-errors"
	"janseva/pkg/platform/audit"
	"janseva/pkg/requestcontext"
)

// fixedSource returns its draws in order, then repeats the last one. The
// first draw picks the method, subsequent draws decide settlement outcomes.
type fixedSource struct {
	draws []float64
	i     int
}

func (f *fixedSource) Float64() float64 {
	if f.i < len(f.draws)-1 {
		v := f.draws[f.i]
		f.i++
		return v
	}
	return f.draws[len(f.draws)-1]
}

// appStub resolves applications without the full lifecycle service.
type appStub struct {
	apps map[id.ApplicationID]application.Application
}

func (a *appStub) Get(_ context.Context, appID id.ApplicationID) (application.Application, error) {
	if app, ok := a.apps[appID]; ok {
		return app, nil
	}
	return application.Application{}, dErrors.New(dErrors.CodeNotFound, "application not found")
}

// PaymentServiceSuite drives the settlement simulator with a manual
// scheduler and a deterministic randomness source.
type PaymentServiceSuite struct {
	suite.Suite
	store     *InMemoryStore
	apps      *appStub
	schemes   *scheme.Service
	inbox     *notification.Service
	scheduler *ManualScheduler
	citizen   id.CitizenID
	scheme    scheme.Scheme
	app       application.Application
	now       time.Time
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.schemes = scheme.NewService(scheme.NewInMemoryStore(), audit.NewPublisher(audit.NewInMemoryStore()))
	s.inbox = notification.NewService(notification.NewInMemoryStore(), nil)
	s.scheduler = NewManualScheduler()
	s.citizen = id.NewCitizenID()
	s.now = time.Date(2026, time.August, 20, 15, 0, 0, 0, time.UTC)

	sc, err := s.schemes.Create(s.ctx(), scheme.CreateInput{
		Name:          "Artisan Stipend",
		Sector:        scheme.SectorMSME,
		BenefitAmount: 6000,
		BenefitType:   "monthly",
	})
	s.Require().NoError(err)
	s.scheme = sc

	s.app = application.Application{
		ID:        id.NewApplicationID(),
		CitizenID: s.citizen,
		SchemeID:  sc.ID,
		Status:    application.StatusApproved,
	}
	s.apps = &appStub{apps: map[id.ApplicationID]application.Application{s.app.ID: s.app}}
}

func (s *PaymentServiceSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *PaymentServiceSuite) newService(draws ...float64) *Service {
	return NewService(
		s.store,
		s.apps,
		s.schemes,
		s.inbox,
		audit.NewPublisher(audit.NewInMemoryStore()),
		nil,
		WithScheduler(s.scheduler),
		WithSource(&fixedSource{draws: draws}),
	)
}

func (s *PaymentServiceSuite) TestInitiate() {
	s.Run("freezes amount and opens in processing", func() {
		svc := s.newService(0.5)

		p, err := svc.Initiate(s.ctx(), s.app.ID)
		s.Require().NoError(err)

		s.Equal(StatusProcessing, p.Status)
		s.Equal(int64(6000), p.Amount)
		s.Equal(MethodBankTransfer, p.Method)
		s.Require().Len(p.Transactions, 1)
		s.Contains(p.Transactions[0].Note, "Payment initiated via bank_transfer")
		s.Equal(1, s.scheduler.Pending())
	})

	s.Run("is idempotent per application", func() {
		svc := s.newService(0.5)

		first, err := svc.Initiate(s.ctx(), s.app.ID)
		s.Require().NoError(err)
		second, err := svc.Initiate(s.ctx(), s.app.ID)
		s.Require().NoError(err)

		s.Equal(first.ID, second.ID)
		list, err := svc.ListByCitizen(s.ctx(), s.citizen)
		s.Require().NoError(err)
		s.Len(list, 1)
	})

	s.Run("unknown application returns not found", func() {
		svc := s.newService(0.5)
		_, err := svc.Initiate(s.ctx(), id.NewApplicationID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("method draw covers all channels", func() {
		s.Equal(MethodDirectBenefitTransfer, s.newService(0.0).pickMethod())
		s.Equal(MethodBankTransfer, s.newService(0.4).pickMethod())
		s.Equal(MethodPostal, s.newService(0.9).pickMethod())
		// A draw of exactly 1.0 clamps to the last method.
		s.Equal(MethodPostal, s.newService(1.0).pickMethod())
	})
}

func (s *PaymentServiceSuite) TestSettleSuccess() {
	// Method draw 0.5, outcome draw 0.01: below the 0.95 success rate.
	svc := s.newService(0.5, 0.01)

	p, err := svc.Initiate(s.ctx(), s.app.ID)
	s.Require().NoError(err)
	s.Require().True(s.scheduler.Fire(p.ID))

	settled, err := svc.Get(s.ctx(), p.ID)
	s.Require().NoError(err)
	s.Equal(StatusPaid, settled.Status)
	s.Require().NotNil(settled.CompletedAt)
	s.Require().Len(settled.Transactions, 2)
	s.Equal("Payment completed", settled.Transactions[1].Note)

	inbox, err := s.inbox.ListByCitizen(s.ctx(), s.citizen)
	s.Require().NoError(err)
	s.Require().Len(inbox, 1)
	s.Equal(notification.SeveritySuccess, inbox[0].Severity)
	s.Contains(inbox[0].Message, "₹6000")
	s.Contains(inbox[0].Message, "Artisan Stipend")
}

func (s *PaymentServiceSuite) TestSettleFailure() {
	// Outcome draw 0.99: above the 0.95 success rate.
	svc := s.newService(0.5, 0.99)

	p, err := svc.Initiate(s.ctx(), s.app.ID)
	s.Require().NoError(err)
	s.Require().True(s.scheduler.Fire(p.ID))

	failed, err := svc.Get(s.ctx(), p.ID)
	s.Require().NoError(err)
	s.Equal(StatusFailed, failed.Status)
	s.Nil(failed.CompletedAt)
	s.Equal("bank details verification required", failed.Transactions[1].Note)

	inbox, err := s.inbox.ListByCitizen(s.ctx(), s.citizen)
	s.Require().NoError(err)
	s.Require().Len(inbox, 1)
	s.Equal(notification.SeverityDanger, inbox[0].Severity)
}

func (s *PaymentServiceSuite) TestRetry() {
	s.Run("failed payment retries back to processing and settles again", func() {
		// Fail first, succeed on the retried attempt.
		svc := s.newService(0.5, 0.99, 0.01)

		p, err := svc.Initiate(s.ctx(), s.app.ID)
		s.Require().NoError(err)
		s.Require().True(s.scheduler.Fire(p.ID))

		retried, err := svc.Retry(s.ctx(), p.ID)
		s.Require().NoError(err)
		s.Equal(StatusProcessing, retried.Status)
		s.Equal("Retry initiated", retried.Transactions[len(retried.Transactions)-1].Note)

		s.Require().True(s.scheduler.Fire(p.ID))
		final, err := svc.Get(s.ctx(), p.ID)
		s.Require().NoError(err)
		s.Equal(StatusPaid, final.Status)
		s.Len(final.Transactions, 4)
	})

	s.Run("processing payment cannot be retried", func() {
		svc := s.newService(0.5)
		p, err := svc.Initiate(s.ctx(), s.app.ID)
		s.Require().NoError(err)

		_, err = svc.Retry(s.ctx(), p.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
	})

	s.Run("paid payment cannot be retried", func() {
		svc := s.newService(0.5, 0.01)
		p, err := svc.Initiate(s.ctx(), s.app.ID)
		s.Require().NoError(err)
		s.Require().True(s.scheduler.Fire(p.ID))

		_, err = svc.Retry(s.ctx(), p.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
	})

	s.Run("retries are not capped", func() {
		draws := []float64{0.5}
		for range 5 {
			draws = append(draws, 0.99)
		}
		svc := s.newService(draws...)

		p, err := svc.Initiate(s.ctx(), s.app.ID)
		s.Require().NoError(err)
		s.Require().True(s.scheduler.Fire(p.ID))

		for range 4 {
			_, err = svc.Retry(s.ctx(), p.ID)
			s.Require().NoError(err)
			s.Require().True(s.scheduler.Fire(p.ID))
		}

		final, err := svc.Get(s.ctx(), p.ID)
		s.Require().NoError(err)
		s.Equal(StatusFailed, final.Status)
	})
}

func (s *PaymentServiceSuite) TestStaleTimerIsNoOp() {
	svc := s.newService(0.5, 0.01, 0.99)

	p, err := svc.Initiate(s.ctx(), s.app.ID)
	s.Require().NoError(err)

	// Resolve directly, then let the original timer fire late.
	_, err = svc.Settle(s.ctx(), p.ID)
	s.Require().NoError(err)
	s.Require().True(s.scheduler.Fire(p.ID))

	final, err := svc.Get(s.ctx(), p.ID)
	s.Require().NoError(err)
	s.Equal(StatusPaid, final.Status)
	s.Len(final.Transactions, 2)
}

func (s *PaymentServiceSuite) TestAmountFrozenAcrossAmendment() {
	svc := s.newService(0.5, 0.01)

	p, err := svc.Initiate(s.ctx(), s.app.ID)
	s.Require().NoError(err)

	newAmount := int64(9000)
	_, err = s.schemes.Amend(s.ctx(), s.scheme.ID, scheme.Patch{BenefitAmount: &newAmount})
	s.Require().NoError(err)

	s.Require().True(s.scheduler.Fire(p.ID))
	final, err := svc.Get(s.ctx(), p.ID)
	s.Require().NoError(err)
	s.Equal(int64(6000), final.Amount)

	inbox, err := s.inbox.ListByCitizen(s.ctx(), s.citizen)
	s.Require().NoError(err)
	s.Require().Len(inbox, 1)
	s.Contains(inbox[0].Message, "₹6000")
}
