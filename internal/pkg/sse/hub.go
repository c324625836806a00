package sse

import (
	"sync"
)

// Event names published by the engine.
const (
	EventEntryClosed = "entry_closed"
	EventAlert       = "alert"
)

// Event is a server-sent event scoped to one tenant.
type Event struct {
	CompanyID string
	Event     string
	Data      interface{}
}

// Hub fans events out to per-tenant subscribers. Consumers of the outbound
// "entry closed" surface (payroll) and the alert stream subscribe here.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for a tenant and returns the event channel
// plus a cleanup function that must be called when the consumer disconnects.
func (h *Hub) Subscribe(companyID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)

	if h.subscribers[companyID] == nil {
		h.subscribers[companyID] = make(map[chan Event]struct{})
	}
	h.subscribers[companyID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[companyID], ch)
		close(ch)
		if len(h.subscribers[companyID]) == 0 {
			delete(h.subscribers, companyID)
		}
	}

	return ch, cleanup
}

// Publish delivers an event to every subscriber of the tenant. Delivery is
// non-blocking; a slow subscriber drops events rather than stalling the
// clock-action write path.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[event.CompanyID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers for a tenant.
func (h *Hub) SubscriberCount(companyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[companyID])
}
