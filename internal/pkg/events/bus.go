package events

import (
	"sync"
	"time"
)

// Type identifies a category of domain event. Subscribers register per type,
// so cross-module refresh stays typed instead of stringly-matched.
type Type string

const (
	TypeAttendanceUpdated Type = "attendance.updated"
	TypeEmployeeChanged   Type = "employee.changed"
	TypeSettingsChanged   Type = "settings.changed"
)

// Event carries one domain change notification.
type Event struct {
	Type       Type
	CompanyID  string
	Payload    interface{}
	OccurredAt time.Time
}

// Bus is an in-process publish/subscribe hub for domain events.
type Bus struct {
	mu   sync.RWMutex
	subs map[Type]map[chan Event]struct{}
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[Type]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for one event type and returns the event
// channel and a cleanup function.
func (b *Bus) Subscribe(t Type) (chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 16)

	if b.subs[t] == nil {
		b.subs[t] = make(map[chan Event]struct{})
	}
	b.subs[t][ch] = struct{}{}

	cleanup := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[t], ch)
		close(ch)
		if len(b.subs[t]) == 0 {
			delete(b.subs, t)
		}
	}

	return ch, cleanup
}

// Publish delivers an event to every subscriber of its type. Delivery is
// non-blocking: subscribers with a full channel miss the event rather than
// stalling the publisher.
func (b *Bus) Publish(event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[event.Type] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers for an event type.
func (b *Bus) SubscriberCount(t Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs[t])
}
