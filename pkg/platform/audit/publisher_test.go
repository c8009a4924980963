package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "janseva/pkg/domain"
	"janseva/pkg/requestcontext"
)

func TestEmitEnrichment(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store)

	now := time.Date(2026, time.February, 3, 8, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithActor(ctx, "Officer Rao")
	ctx = requestcontext.WithRequestID(ctx, "req-42")
	ctx = requestcontext.WithDevice(ctx, "Chrome 120 on Linux")

	citizenID := id.NewCitizenID()
	require.NoError(t, p.Emit(ctx, Event{
		CitizenID: citizenID,
		Action:    EventApplicationSubmitted,
		Subject:   "app-1",
	}))

	events := store.All()
	require.Len(t, events, 1)
	assert.Equal(t, now, events[0].Timestamp)
	assert.Equal(t, "Officer Rao", events[0].Actor)
	assert.Equal(t, "req-42", events[0].RequestID)
	assert.Equal(t, "Chrome 120 on Linux", events[0].Device)
}

func TestEmitDefaultsToSystemActor(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store)

	require.NoError(t, p.Emit(context.Background(), Event{Action: EventPaymentSettled}))

	events := store.All()
	require.Len(t, events, 1)
	assert.Equal(t, requestcontext.SystemActor, events[0].Actor)
}

func TestAsyncBufferDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store, WithAsyncBuffer(8))

	for range 5 {
		require.NoError(t, p.Emit(context.Background(), Event{Action: EventPaymentInitiated}))
	}
	p.Close()

	assert.Len(t, store.All(), 5)
}

func TestFanoutAppendsToAllSinks(t *testing.T) {
	first := NewInMemoryStore()
	second := NewInMemoryStore()
	fanout := NewFanout(first, second)

	require.NoError(t, fanout.Append(context.Background(), Event{Action: EventSchemeCreated}))

	assert.Len(t, first.All(), 1)
	assert.Len(t, second.All(), 1)
}
