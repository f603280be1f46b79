package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/reconciliation"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/session"
	"github.com/staffdeck/staffdeck-backend-go/internal/repository/memory"
)

func TestSweepIdleSessions_ClearsOverridesOfSweptSessions(t *testing.T) {
	sessions := session.NewStore(10*time.Millisecond, time.Minute)
	overrides := memory.NewOverrideStore()
	jobs := NewSessionJobs(sessions, overrides)

	idle := sessions.Create("user-1")
	idleKey := reconciliation.OverrideKey{
		SessionID:  idle.ID,
		EmployeeID: "emp-1",
		WeekStart:  "2026-08-24",
		Day:        attendance.Wednesday,
	}
	require.True(t, overrides.Toggle(idleKey))

	time.Sleep(25 * time.Millisecond)

	// A session still active at sweep time keeps its overrides
	live := sessions.Create("user-2")
	liveKey := idleKey
	liveKey.SessionID = live.ID
	require.True(t, overrides.Toggle(liveKey))

	require.NoError(t, jobs.SweepIdleSessions(context.Background()))

	assert.False(t, overrides.IsIgnored(idleKey), "override should die with the swept session")
	assert.True(t, overrides.IsIgnored(liveKey))
}
