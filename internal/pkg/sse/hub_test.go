package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTenantSubscribersOnly(t *testing.T) {
	h := NewHub()

	chA, cleanupA := h.Subscribe("company-a")
	defer cleanupA()
	chB, cleanupB := h.Subscribe("company-b")
	defer cleanupB()

	h.Publish(Event{CompanyID: "company-a", Event: EventAlert, Data: "hello"})

	select {
	case event := <-chA:
		assert.Equal(t, EventAlert, event.Event)
	default:
		t.Fatal("subscriber of company-a missed the event")
	}

	select {
	case <-chB:
		t.Fatal("event leaked to another tenant")
	default:
	}
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	h := NewHub()

	_, cleanup := h.Subscribe("company-a")
	require.Equal(t, 1, h.SubscriberCount("company-a"))

	cleanup()
	assert.Equal(t, 0, h.SubscriberCount("company-a"))

	// Publishing with no subscribers is a no-op, not a panic.
	h.Publish(Event{CompanyID: "company-a", Event: EventEntryClosed})
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	h := NewHub()

	ch, cleanup := h.Subscribe("company-a")
	defer cleanup()

	// Overflow the buffer; Publish must never block.
	for i := 0; i < cap(ch)+10; i++ {
		h.Publish(Event{CompanyID: "company-a", Event: EventAlert, Data: i})
	}

	assert.Equal(t, cap(ch), len(ch))
}
