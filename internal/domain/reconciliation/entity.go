package reconciliation

import (
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
)

// ChipCategory is the render category of one day cell in the weekly grid.
// Exactly one category applies per day, chosen by a fixed precedence; see
// the deriver in service/reconciliation.
type ChipCategory string

const (
	ChipUnmarked        ChipCategory = "unmarked"
	ChipOffDay          ChipCategory = "off_day"
	ChipAutoPresent     ChipCategory = "auto_present"
	ChipPenaltyPresent  ChipCategory = "penalty_present"
	ChipPenaltyAbsent   ChipCategory = "penalty_absent"
	ChipPenaltyReverted ChipCategory = "penalty_reverted"
	ChipPresent         ChipCategory = "present"
	ChipAbsent          ChipCategory = "absent"
)

// IsPenalty reports whether the category is one of the penalty annotations.
func (c ChipCategory) IsPenalty() bool {
	return c == ChipPenaltyPresent || c == ChipPenaltyAbsent || c == ChipPenaltyReverted
}

// DayChip is one rendered cell of an employee's weekly grid.
type DayChip struct {
	Day         attendance.DayCode   `json:"day"`
	Status      attendance.DayStatus `json:"status"`
	Category    ChipCategory         `json:"category"`
	Tooltip     *string              `json:"tooltip,omitempty"`
	Overridable bool                 `json:"overridable"`
}

// WeekView is the derived weekly grid for one employee. It is recomputed
// from its inputs on every read and never persisted.
type WeekView struct {
	EmployeeID   string              `json:"employee_id"`
	EmployeeName string              `json:"employee_name"`
	WeekStart    string              `json:"week_start"`
	Days         [7]DayChip          `json:"days"`
	AbsentCount  int                 `json:"absent_count"`
	Penalty      bool                `json:"penalty_triggered"`
	FirstOffDay  *attendance.DayCode `json:"first_off_day,omitempty"`
}

// OverrideKey identifies one penalty override. Overrides are scoped to the
// UI session that set them and vanish with it.
type OverrideKey struct {
	SessionID  string
	EmployeeID string
	WeekStart  string // YYYY-MM-DD, always a Monday
	Day        attendance.DayCode
}

// OverrideStore keeps transient penalty overrides. Implementations must be
// safe for concurrent use; there is no server-side persistence.
type OverrideStore interface {
	// IsIgnored reports whether the penalty marking for key is reverted
	IsIgnored(key OverrideKey) bool

	// Toggle flips the override and returns the new state. Toggling twice
	// restores the original display.
	Toggle(key OverrideKey) bool

	// ClearSession drops every override held by one session
	ClearSession(sessionID string)
}
