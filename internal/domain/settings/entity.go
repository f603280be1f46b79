package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanySettings holds the attendance and payroll policy knobs for one
// company.
type CompanySettings struct {
	ID        string
	CompanyID string
	// WeeklyAbsentThreshold is the Mon-Sat absence count at which the weekly
	// penalty fires. Nil disables penalty derivation entirely (fail open).
	WeeklyAbsentThreshold *int
	OvertimeRatePerMinute decimal.Decimal
	SundayBonusEnabled    bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

const (
	// Threshold bounds when a threshold is configured at all.
	MinWeeklyAbsentThreshold = 2
	MaxWeeklyAbsentThreshold = 7
)
