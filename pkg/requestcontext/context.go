// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services consume them. Keeping the package
// free of net/http dependencies lets domain code read identity and time
// without pulling in transport code.
//
// Usage in services (read values):
//
//	citizenID := requestcontext.CitizenID(ctx)
//	actor := requestcontext.Actor(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithActor(ctx, "Officer Rao")
package requestcontext

import (
	"context"
	"time"

	id "janseva/pkg/domain"
)

// SystemActor is the attribution used when no authenticated actor is present.
const SystemActor = "System"

type (
	citizenIDKey   struct{}
	actorKey       struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	deviceKey      struct{}
)

// CitizenID retrieves the authenticated citizen ID from the context.
// Returns the zero value (nil UUID) if not set.
func CitizenID(ctx context.Context) id.CitizenID {
	if cid, ok := ctx.Value(citizenIDKey{}).(id.CitizenID); ok {
		return cid
	}
	return id.CitizenID{}
}

// WithCitizenID injects a citizen ID into the context.
func WithCitizenID(ctx context.Context, cid id.CitizenID) context.Context {
	return context.WithValue(ctx, citizenIDKey{}, cid)
}

// Actor retrieves the acting user's display name for status history and
// review note attribution. Defaults to SystemActor when unauthenticated.
func Actor(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return SystemActor
}

// WithActor injects an actor display name into the context.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Device retrieves the caller's device summary, e.g. "Chrome 120 on Linux".
func Device(ctx context.Context) string {
	if d, ok := ctx.Value(deviceKey{}).(string); ok {
		return d
	}
	return ""
}

// WithDevice injects a device summary into the context.
func WithDevice(ctx context.Context, device string) context.Context {
	return context.WithValue(ctx, deviceKey{}, device)
}

// Now retrieves the request-scoped time from context. Falls back to
// time.Now() for non-HTTP contexts (workers, CLI, tests that don't care).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for service unit
// tests that don't run the middleware chain, and for workers that need a
// consistent time within a batch.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
