package settings

import (
	"github.com/shopspring/decimal"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/validator"
)

// ========================================
// SETTINGS DTOs
// ========================================

// UpdateSettingsRequest updates company policy. DisablePenalty clears the
// weekly threshold; it exists because an absent JSON field and a null one
// both decode to a nil pointer.
type UpdateSettingsRequest struct {
	WeeklyAbsentThreshold *int    `json:"weekly_absent_threshold,omitempty"`
	DisablePenalty        bool    `json:"disable_penalty,omitempty"`
	OvertimeRatePerMinute *string `json:"overtime_rate_per_minute,omitempty"`
	SundayBonusEnabled    *bool   `json:"sunday_bonus_enabled,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WeeklyAbsentThreshold != nil {
		if r.DisablePenalty {
			errs = append(errs, validator.ValidationError{
				Field:   "weekly_absent_threshold",
				Message: "cannot set a threshold and disable the penalty in one request",
			})
		} else if *r.WeeklyAbsentThreshold < MinWeeklyAbsentThreshold || *r.WeeklyAbsentThreshold > MaxWeeklyAbsentThreshold {
			errs = append(errs, validator.ValidationError{
				Field:   "weekly_absent_threshold",
				Message: "weekly_absent_threshold must be between 2 and 7",
			})
		}
	}

	if r.OvertimeRatePerMinute != nil {
		if rate, err := decimal.NewFromString(*r.OvertimeRatePerMinute); err != nil || rate.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "overtime_rate_per_minute",
				Message: "overtime_rate_per_minute must be a non-negative decimal",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	CompanyID             string `json:"company_id"`
	WeeklyAbsentThreshold *int   `json:"weekly_absent_threshold,omitempty"`
	OvertimeRatePerMinute string `json:"overtime_rate_per_minute"`
	SundayBonusEnabled    bool   `json:"sunday_bonus_enabled"`
	UpdatedAt             string `json:"updated_at"`
}
