package audit

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"janseva/pkg/requestcontext"
)

// Publisher captures structured audit events. It is append-only and uses the
// store layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
	inbox chan Event
	done  chan struct{}
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer makes Emit enqueue events on a buffered channel consumed
// by a background goroutine, so domain operations never block on slow sinks.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan Event, size)
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.inbox != nil {
		p.done = make(chan struct{})
		go p.drain()
	}
	return p
}

// Emit records one audit event, enriching it with request correlation and
// the active trace span when present.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Actor == "" {
		event.Actor = requestcontext.Actor(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Device == "" {
		event.Device = requestcontext.Device(ctx)
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		event.TraceID = sc.TraceID().String()
		event.SpanID = sc.SpanID().String()
	}

	if p.inbox != nil {
		select {
		case p.inbox <- event:
			return nil
		default:
			// Buffer full: fall through to the synchronous path rather
			// than drop evidence of a state change.
		}
	}
	return p.store.Append(ctx, event)
}

// Close stops the background drain goroutine after flushing queued events.
func (p *Publisher) Close() {
	if p.inbox == nil {
		return
	}
	close(p.inbox)
	<-p.done
}

func (p *Publisher) drain() {
	defer close(p.done)
	ctx := context.Background()
	for event := range p.inbox {
		// Give each append its own deadline so one stuck sink cannot wedge
		// the drain loop forever.
		appendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		_ = p.store.Append(appendCtx, event)
		cancel()
	}
}
