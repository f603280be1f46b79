package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishDeliversToSubscriber(t *testing.T) {
	bus := NewBus()
	ch, cleanup := bus.Subscribe(TypeAttendanceUpdated)
	defer cleanup()

	bus.Publish(Event{Type: TypeAttendanceUpdated, CompanyID: "c1", Payload: "e1"})

	select {
	case ev := <-ch:
		assert.Equal(t, TypeAttendanceUpdated, ev.Type)
		assert.Equal(t, "c1", ev.CompanyID)
		assert.False(t, ev.OccurredAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected event, got none")
	}
}

func TestBus_PublishIgnoresOtherTypes(t *testing.T) {
	bus := NewBus()
	ch, cleanup := bus.Subscribe(TypeEmployeeChanged)
	defer cleanup()

	bus.Publish(Event{Type: TypeSettingsChanged, CompanyID: "c1"})

	select {
	case <-ch:
		t.Fatal("subscriber received event of a different type")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_CleanupRemovesSubscriber(t *testing.T) {
	bus := NewBus()
	_, cleanup := bus.Subscribe(TypeAttendanceUpdated)
	require.Equal(t, 1, bus.SubscriberCount(TypeAttendanceUpdated))

	cleanup()
	assert.Equal(t, 0, bus.SubscriberCount(TypeAttendanceUpdated))
}

func TestBus_PublishNonBlockingWhenChannelFull(t *testing.T) {
	bus := NewBus()
	ch, cleanup := bus.Subscribe(TypeAttendanceUpdated)
	defer cleanup()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(Event{Type: TypeAttendanceUpdated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber channel")
	}
	assert.NotEmpty(t, ch)
}
