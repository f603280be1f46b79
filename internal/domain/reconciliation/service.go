package reconciliation

import (
	"context"
)

// ReconciliationService derives the weekly attendance grid and manages
// penalty overrides.
type ReconciliationService interface {
	// WeeklyBoard derives one WeekView per active employee for the requested
	// week. Pure with respect to its inputs: same roster, payload, threshold
	// and overrides always produce the same board.
	WeeklyBoard(ctx context.Context, req BoardRequest) (BoardResponse, error)

	// ToggleOverride flips the penalty override for one day. Display-only:
	// the stored attendance status is never mutated. Idempotent in pairs.
	ToggleOverride(ctx context.Context, req ToggleOverrideRequest) (ToggleOverrideResponse, error)
}
