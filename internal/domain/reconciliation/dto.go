package reconciliation

import (
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/validator"
)

// ========================================
// RECONCILIATION DTOs
// ========================================

// BoardRequest selects the week the grid is derived for.
type BoardRequest struct {
	WeekStart string `json:"week_start"` // YYYY-MM-DD, must be a Monday
}

func (r *BoardRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidWeekStart(r.WeekStart); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be a Monday in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BoardResponse is the full weekly grid: one WeekView per active employee.
// Threshold is echoed so the client can tell degraded mode (nil) apart from
// a configured one.
type BoardResponse struct {
	WeekStart      string     `json:"week_start"`
	Threshold      *int       `json:"weekly_absent_threshold,omitempty"`
	PenaltyEnabled bool       `json:"penalty_enabled"`
	Employees      []WeekView `json:"employees"`
}

type ToggleOverrideRequest struct {
	EmployeeID string `json:"employee_id"`
	WeekStart  string `json:"week_start"` // YYYY-MM-DD, must be a Monday
	Day        string `json:"day"`
}

func (r *ToggleOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidWeekStart(r.WeekStart); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be a Monday in YYYY-MM-DD format",
		})
	}

	if !attendance.DayCode(r.Day).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day must be one of: mon, tue, wed, thu, fri, sat, sun",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ToggleOverrideResponse struct {
	EmployeeID string             `json:"employee_id"`
	WeekStart  string             `json:"week_start"`
	Day        attendance.DayCode `json:"day"`
	Ignored    bool               `json:"ignored"`
	Category   ChipCategory       `json:"category"`
}
