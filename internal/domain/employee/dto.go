package employee

import (
	"strings"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/validator"
)

// ========================================
// EMPLOYEE DTOs
// ========================================

type CreateEmployeeRequest struct {
	EmployeeCode       string          `json:"employee_code"`
	FullName           string          `json:"full_name"`
	Email              *string         `json:"email,omitempty"`
	Position           *string         `json:"position,omitempty"`
	OffDays            map[string]bool `json:"off_days,omitempty"`
	WeeklyRulesEnabled bool            `json:"weekly_rules_enabled"`
	BaseSalary         *string         `json:"base_salary,omitempty"`
	HireDate           string          `json:"hire_date"` // YYYY-MM-DD
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must be in NNNN-NNNN format",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if _, valid := validator.IsValidDate(r.HireDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be in YYYY-MM-DD format",
		})
	}

	errs = append(errs, validateOffDays(r.OffDays)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID                 string          `json:"-"`
	FullName           *string         `json:"full_name,omitempty"`
	Email              *string         `json:"email,omitempty"`
	Position           *string         `json:"position,omitempty"`
	OffDays            map[string]bool `json:"off_days,omitempty"`
	WeeklyRulesEnabled *bool           `json:"weekly_rules_enabled,omitempty"`
	EmploymentStatus   *string         `json:"employment_status,omitempty"`
	BaseSalary         *string         `json:"base_salary,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if r.EmploymentStatus != nil {
		validStatuses := []string{"active", "resigned", "terminated"}
		if !validator.IsInSlice(strings.ToLower(*r.EmploymentStatus), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "employment_status",
				Message: "employment_status must be one of: active, resigned, terminated",
			})
		}
	}

	errs = append(errs, validateOffDays(r.OffDays)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BulkUpdateRequest applies the same partial edit to many employees at once.
// Only non-nil fields are written.
type BulkUpdateRequest struct {
	EmployeeIDs        []string        `json:"employee_ids"`
	Position           *string         `json:"position,omitempty"`
	EmploymentStatus   *string         `json:"employment_status,omitempty"`
	OffDays            map[string]bool `json:"off_days,omitempty"`
	WeeklyRulesEnabled *bool           `json:"weekly_rules_enabled,omitempty"`
}

func (r *BulkUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "at least one employee_id is required",
		})
	}

	if r.Position == nil && r.EmploymentStatus == nil && r.OffDays == nil && r.WeeklyRulesEnabled == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "fields",
			Message: "at least one field to update is required",
		})
	}

	if r.EmploymentStatus != nil {
		validStatuses := []string{"active", "resigned", "terminated"}
		if !validator.IsInSlice(strings.ToLower(*r.EmploymentStatus), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "employment_status",
				Message: "employment_status must be one of: active, resigned, terminated",
			})
		}
	}

	errs = append(errs, validateOffDays(r.OffDays)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateOffDays(offDays map[string]bool) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for code := range offDays {
		if !attendance.DayCode(code).Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "off_days",
				Message: "unknown day code: " + code,
			})
		}
	}
	return errs
}

type EmployeeResponse struct {
	ID                 string          `json:"id"`
	EmployeeCode       string          `json:"employee_code"`
	FullName           string          `json:"full_name"`
	Email              *string         `json:"email,omitempty"`
	Position           *string         `json:"position,omitempty"`
	OffDays            map[string]bool `json:"off_days"`
	WeeklyRulesEnabled bool            `json:"weekly_rules_enabled"`
	EmploymentStatus   string          `json:"employment_status"`
	BaseSalary         *string         `json:"base_salary,omitempty"`
	HireDate           string          `json:"hire_date"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}

type EmployeeFilter struct {
	// Search & Filter
	Search           *string `json:"search,omitempty"` // matches name or code
	Position         *string `json:"position,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // full_name, employee_code, hire_date
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

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

	if f.EmploymentStatus != nil {
		validStatuses := []string{"active", "resigned", "terminated"}
		if !validator.IsInSlice(*f.EmploymentStatus, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "employment_status",
				Message: "employment_status must be one of: active, resigned, terminated",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"full_name", "employee_code", "hire_date"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: full_name, employee_code, hire_date",
			})
		}
	} else {
		f.SortBy = "full_name" // Default sort
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
		f.SortOrder = "asc"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}

type BulkUpdateResponse struct {
	UpdatedCount int      `json:"updated_count"`
	EmployeeIDs  []string `json:"employee_ids"`
}
