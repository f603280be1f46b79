package attendance

import (
	"strings"

	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// MarkDayRequest records or corrects one employee's outcome for one day.
type MarkDayRequest struct {
	EmployeeID      string `json:"employee_id"`
	Date            string `json:"date"` // YYYY-MM-DD
	Status          string `json:"status"`
	OvertimeMinutes *int   `json:"overtime_minutes,omitempty"`
}

func (r *MarkDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !DayStatus(strings.ToLower(r.Status)).Markable() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, off",
		})
	}

	if r.OvertimeMinutes != nil && *r.OvertimeMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_minutes",
			Message: "overtime_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// WeekRequest selects one Monday-anchored week.
type WeekRequest struct {
	WeekStart string `json:"week_start"` // YYYY-MM-DD, must be a Monday
}

func (r *WeekRequest) Validate() error {
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

type AttendanceResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	Date             string  `json:"date"`
	Day              DayCode `json:"day"`
	Status           string  `json:"status"`
	AutoMarkedReason *string `json:"auto_marked_reason,omitempty"`
	IsSundayBonus    bool    `json:"is_sunday_bonus"`
	OvertimeMinutes  *int    `json:"overtime_minutes,omitempty"`
	MarkedBy         *string `json:"marked_by,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	// Status validation
	if f.Status != nil {
		validStatuses := []string{"present", "absent", "off"}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, absent, off",
			})
		}
	}

	// Date validation
	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	// Sort validation
	if f.SortBy != "" {
		validSortFields := []string{"date", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, status",
			})
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// DayRecordResponse is the wire shape of one day cell in the weekly payload.
type DayRecordResponse struct {
	Status           string  `json:"status"`
	AutoMarkedReason *string `json:"auto_marked_reason,omitempty"`
	IsSundayBonus    bool    `json:"is_sunday_bonus,omitempty"`
}

// WeeklyAttendanceResponse is the raw weekly payload keyed by employee then
// day code. Days without a record are omitted and derive as unmarked.
type WeeklyAttendanceResponse struct {
	WeekStart string                                   `json:"week_start"`
	Employees map[string]map[DayCode]DayRecordResponse `json:"employees"`
}
