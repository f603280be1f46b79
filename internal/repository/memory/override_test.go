package memory

import (
	"testing"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/reconciliation"
	"github.com/stretchr/testify/assert"
)

func TestOverrideStore_ToggleTwiceRestores(t *testing.T) {
	store := NewOverrideStore()
	key := reconciliation.OverrideKey{
		SessionID:  "sess-1",
		EmployeeID: "emp-1",
		WeekStart:  "2026-08-24",
		Day:        attendance.Wednesday,
	}

	assert.False(t, store.IsIgnored(key))

	assert.True(t, store.Toggle(key))
	assert.True(t, store.IsIgnored(key))

	assert.False(t, store.Toggle(key))
	assert.False(t, store.IsIgnored(key))
}

func TestOverrideStore_KeysAreIndependent(t *testing.T) {
	store := NewOverrideStore()
	base := reconciliation.OverrideKey{
		SessionID:  "sess-1",
		EmployeeID: "emp-1",
		WeekStart:  "2026-08-24",
		Day:        attendance.Wednesday,
	}
	otherWeek := base
	otherWeek.WeekStart = "2026-08-31"
	otherSession := base
	otherSession.SessionID = "sess-2"

	store.Toggle(base)

	assert.True(t, store.IsIgnored(base))
	assert.False(t, store.IsIgnored(otherWeek))
	assert.False(t, store.IsIgnored(otherSession))
}

func TestOverrideStore_ClearSession(t *testing.T) {
	store := NewOverrideStore()
	first := reconciliation.OverrideKey{
		SessionID:  "sess-1",
		EmployeeID: "emp-1",
		WeekStart:  "2026-08-24",
		Day:        attendance.Monday,
	}
	second := first
	second.EmployeeID = "emp-2"
	kept := first
	kept.SessionID = "sess-2"

	store.Toggle(first)
	store.Toggle(second)
	store.Toggle(kept)

	store.ClearSession("sess-1")

	assert.False(t, store.IsIgnored(first))
	assert.False(t, store.IsIgnored(second))
	assert.True(t, store.IsIgnored(kept))
}
