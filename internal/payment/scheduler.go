package payment

import (
	"sync"
	"time"

	id "janseva/pkg/domain"
)

// Scheduler defers settlement callbacks. The production implementation uses
// wall-clock timers; tests substitute ManualScheduler to fire callbacks
// deterministically.
type Scheduler interface {
	Schedule(paymentID id.PaymentID, delay time.Duration, fn func())
}

// TimerScheduler runs callbacks on real timers.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(_ id.PaymentID, delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

// ManualScheduler holds scheduled callbacks until fired explicitly.
type ManualScheduler struct {
	mu      sync.Mutex
	pending map[id.PaymentID]func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[id.PaymentID]func())}
}

func (s *ManualScheduler) Schedule(paymentID id.PaymentID, _ time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[paymentID] = fn
}

// Fire runs the pending callback for paymentID, if any, and reports whether
// one existed.
func (s *ManualScheduler) Fire(paymentID id.PaymentID) bool {
	s.mu.Lock()
	fn, ok := s.pending[paymentID]
	delete(s.pending, paymentID)
	s.mu.Unlock()
	if ok {
		fn()
	}
	return ok
}

// Pending reports how many callbacks are waiting.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
