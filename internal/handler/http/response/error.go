package response

import (
	"errors"
	"net/http"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/auth"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/employee"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/reconciliation"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/settings"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/ticket"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/user"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/session"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrPINNotSet):
		BadRequest(w, "No PIN enrolled for this account", nil)
	case errors.Is(err, auth.ErrInvalidPIN):
		Unauthorized(w, "Invalid PIN")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Session errors
	case errors.Is(err, session.ErrSessionNotFound):
		Unauthorized(w, "Session not found")
	case errors.Is(err, session.ErrSessionExpired):
		Unauthorized(w, "Session expired due to inactivity")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, employee.ErrEmptyBulkSelection):
		BadRequest(w, "Bulk update requires at least one employee", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDateInFuture):
		BadRequest(w, "Cannot mark attendance for a future date", nil)
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")

	// Reconciliation domain errors
	case errors.Is(err, reconciliation.ErrDayNotOverridable):
		BadRequest(w, "Day is not a penalty day and cannot be overridden", nil)
	case errors.Is(err, reconciliation.ErrEmployeeNotOnBoard):
		NotFound(w, "Employee is not on the weekly board")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Company settings not found")

	// Ticket domain errors
	case errors.Is(err, ticket.ErrTicketNotFound):
		NotFound(w, "Ticket not found")
	case errors.Is(err, ticket.ErrInvalidTransition):
		Conflict(w, "Ticket status transition not allowed")
	case errors.Is(err, ticket.ErrTicketAlreadyClosed):
		Conflict(w, "Ticket is already closed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
