package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/reconciliation"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/session"
)

type SessionJobs struct {
	sessions  *session.Store
	overrides reconciliation.OverrideStore
}

func NewSessionJobs(sessions *session.Store, overrides reconciliation.OverrideStore) *SessionJobs {
	return &SessionJobs{sessions: sessions, overrides: overrides}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_idle_sessions", 10*time.Minute, j.SweepIdleSessions)
}

// SweepIdleSessions drops sessions past the inactivity timeout so abandoned
// logins do not accumulate. Penalty overrides are keyed by session and must
// die with it, same as on logout.
func (j *SessionJobs) SweepIdleSessions(_ context.Context) error {
	removed := j.sessions.Sweep()
	for _, sessionID := range removed {
		j.overrides.ClearSession(sessionID)
	}

	if len(removed) > 0 {
		slog.Info("Cron: swept idle sessions", "count", len(removed))
	}
	return nil
}
