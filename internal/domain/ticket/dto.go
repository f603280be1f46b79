package ticket

import (
	"strings"

	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/validator"
)

// ========================================
// TICKET DTOs
// ========================================

type CreateTicketRequest struct {
	EmployeeID string `json:"employee_id"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	Priority   string `json:"priority"`
}

func (r *CreateTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject is required",
		})
	}

	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}

	if r.Priority == "" {
		r.Priority = string(PriorityMedium)
	} else if !validator.IsInSlice(strings.ToLower(r.Priority), []string{"low", "medium", "high"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, medium, high",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateStatusRequest moves a ticket through its lifecycle, optionally with
// an admin reply.
type UpdateStatusRequest struct {
	ID     string  `json:"-"`
	Status string  `json:"status"`
	Reply  *string `json:"reply,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(strings.ToLower(r.Status), []string{"open", "in_progress", "resolved", "closed"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: open, in_progress, resolved, closed",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TicketResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Subject      string  `json:"subject"`
	Message      string  `json:"message"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	Reply        *string `json:"reply,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type TicketFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Priority   *string `json:"priority,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *TicketFilter) Validate() error {
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

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{"open", "in_progress", "resolved", "closed"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: open, in_progress, resolved, closed",
		})
	}

	if f.Priority != nil && !validator.IsInSlice(*f.Priority, []string{"low", "medium", "high"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, medium, high",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListTicketResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Showing    string           `json:"showing"`
	Tickets    []TicketResponse `json:"tickets"`
}
