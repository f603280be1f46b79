package payroll

import (
	"time"

	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/validator"
)

// ========================================
// PAYROLL DTOs
// ========================================

type OverviewRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *OverviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 2000 || r.Year > time.Now().Year()+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SummaryResponse struct {
	EmployeeID      string `json:"employee_id"`
	EmployeeName    string `json:"employee_name"`
	EmployeeCode    string `json:"employee_code"`
	WorkingDays     int    `json:"working_days"`
	PresentDays     int    `json:"present_days"`
	AbsentDays      int    `json:"absent_days"`
	SundayBonusDays int    `json:"sunday_bonus_days"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	BaseSalary      string `json:"base_salary"`
	OvertimePay     string `json:"overtime_pay"`
	AbsenceDeduct   string `json:"absence_deduction"`
	NetPay          string `json:"net_pay"`
}

type OverviewResponse struct {
	PeriodMonth int               `json:"period_month"`
	PeriodYear  int               `json:"period_year"`
	Employees   []SummaryResponse `json:"employees"`
	TotalNetPay string            `json:"total_net_pay"`
}
