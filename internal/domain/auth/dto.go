package auth

import (
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/validator"
)

// ========================================
// AUTH DTOs
// ========================================

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
	SessionID             string `json:"session_id"`
}

// SetPINRequest enrolls or replaces the user's 6-digit re-auth PIN.
type SetPINRequest struct {
	PIN string `json:"pin"`
}

func (r *SetPINRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPIN(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be exactly 6 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// VerifyPINRequest re-authenticates the current session for sensitive
// operations.
type VerifyPINRequest struct {
	PIN string `json:"pin"`
}

func (r *VerifyPINRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPIN(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be exactly 6 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VerifyPINResponse struct {
	ElevatedToken string `json:"elevated_token"`
	ExpiresIn     int    `json:"expires_in"`
}
