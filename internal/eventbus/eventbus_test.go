package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridsel/internal/domain"
)

func TestPublishIsSynchronous(t *testing.T) {
	b := New(nil)

	var got []domain.DomainEvent
	b.Subscribe(EventSelectionEnded, func(e DomainEvent) {
		got = append(got, e)
	})

	b.Publish(SelectionEndedEvent{Selected: 2, Total: 4})

	require.Len(t, got, 1, "handler should run before Publish returns")
	assert.Equal(t, SelectionEndedEvent{Selected: 2, Total: 4}, got[0])
}

func TestPublishOnlyMatchingType(t *testing.T) {
	b := New(nil)

	calls := 0
	b.Subscribe(EventSelectionChanged, func(DomainEvent) { calls++ })

	b.Publish(SelectionEndedEvent{})
	assert.Equal(t, 0, calls)

	b.Publish(SelectionChangedEvent{})
	assert.Equal(t, 1, calls)
}

func TestUnsubscribeRemovesOnlyThatHandler(t *testing.T) {
	b := New(nil)

	var first, second int
	unsub := b.Subscribe(EventSelectionEnded, func(DomainEvent) { first++ })
	b.Subscribe(EventSelectionEnded, func(DomainEvent) { second++ })

	b.Publish(SelectionEndedEvent{})
	unsub()
	b.Publish(SelectionEndedEvent{})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestHandlerPanicDoesNotStopDelivery(t *testing.T) {
	b := New(nil)

	delivered := false
	b.Subscribe(EventSelectionEnded, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventSelectionEnded, func(DomainEvent) { delivered = true })

	assert.NotPanics(t, func() { b.Publish(SelectionEndedEvent{}) })
	assert.True(t, delivered)
}
