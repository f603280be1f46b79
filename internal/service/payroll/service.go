package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/employee"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/payroll"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/settings"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	employee.EmployeeRepository
	settings.SettingsRepository
}

// WorkingDays counts the calendar days of one month that are not configured
// off days for the employee.
func WorkingDays(emp employee.Employee, month int, year int) int {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	days := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if !emp.OffDays[attendance.DayCodeForDate(d)] {
			days++
		}
	}
	return days
}

// BuildSummary derives one employee's monthly payroll line. Pure arithmetic:
// deduction is the pro-rated daily rate times absent days, overtime is the
// per-minute rate times logged minutes. All money math stays in decimal.
func BuildSummary(emp employee.Employee, counts payroll.AttendanceCounts, month int, year int, overtimeRate decimal.Decimal) payroll.PayrollSummary {
	workingDays := WorkingDays(emp, month, year)

	baseSalary := decimal.Zero
	if emp.BaseSalary != nil {
		baseSalary = *emp.BaseSalary
	}

	absenceDeduct := decimal.Zero
	if workingDays > 0 && counts.AbsentDays > 0 {
		dailyRate := baseSalary.Div(decimal.NewFromInt(int64(workingDays)))
		absenceDeduct = dailyRate.Mul(decimal.NewFromInt(int64(counts.AbsentDays)))
	}

	overtimePay := overtimeRate.Mul(decimal.NewFromInt(int64(counts.TotalOvertimeMinutes)))
	netPay := baseSalary.Sub(absenceDeduct).Add(overtimePay)

	return payroll.PayrollSummary{
		EmployeeID:      emp.ID,
		EmployeeName:    emp.FullName,
		EmployeeCode:    emp.EmployeeCode,
		PeriodMonth:     month,
		PeriodYear:      year,
		WorkingDays:     workingDays,
		PresentDays:     counts.PresentDays,
		AbsentDays:      counts.AbsentDays,
		SundayBonusDays: counts.SundayBonusDays,
		OvertimeMinutes: counts.TotalOvertimeMinutes,
		BaseSalary:      baseSalary.Round(2),
		OvertimePay:     overtimePay.Round(2),
		AbsenceDeduct:   absenceDeduct.Round(2),
		NetPay:          netPay.Round(2),
		GeneratedAt:     time.Now().UTC(),
	}
}

// Overview implements payroll.PayrollService.
func (s *PayrollServiceImpl) Overview(ctx context.Context, req payroll.OverviewRequest) (payroll.OverviewResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.OverviewResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return payroll.OverviewResponse{}, err
	}

	roster, err := s.EmployeeRepository.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return payroll.OverviewResponse{}, fmt.Errorf("failed to load roster: %w", err)
	}

	counts, err := s.PayrollRepository.MonthlyCounts(ctx, req.Month, req.Year, companyID)
	if err != nil {
		return payroll.OverviewResponse{}, err
	}

	overtimeRate := decimal.Zero
	companySettings, err := s.SettingsRepository.GetByCompanyID(ctx, companyID)
	if err != nil && !errors.Is(err, settings.ErrSettingsNotFound) {
		return payroll.OverviewResponse{}, err
	}
	if err == nil {
		overtimeRate = companySettings.OvertimeRatePerMinute
	}

	resp := payroll.OverviewResponse{
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		Employees:   make([]payroll.SummaryResponse, 0, len(roster)),
	}

	totalNet := decimal.Zero
	for _, emp := range roster {
		summary := BuildSummary(emp, counts[emp.ID], req.Month, req.Year, overtimeRate)
		totalNet = totalNet.Add(summary.NetPay)
		resp.Employees = append(resp.Employees, toSummaryResponse(summary))
	}
	resp.TotalNetPay = totalNet.StringFixed(2)

	return resp, nil
}

func toSummaryResponse(s payroll.PayrollSummary) payroll.SummaryResponse {
	return payroll.SummaryResponse{
		EmployeeID:      s.EmployeeID,
		EmployeeName:    s.EmployeeName,
		EmployeeCode:    s.EmployeeCode,
		WorkingDays:     s.WorkingDays,
		PresentDays:     s.PresentDays,
		AbsentDays:      s.AbsentDays,
		SundayBonusDays: s.SundayBonusDays,
		OvertimeMinutes: s.OvertimeMinutes,
		BaseSalary:      s.BaseSalary.StringFixed(2),
		OvertimePay:     s.OvertimePay.StringFixed(2),
		AbsenceDeduct:   s.AbsenceDeduct.StringFixed(2),
		NetPay:          s.NetPay.StringFixed(2),
	}
}

func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository:  payrollRepo,
		EmployeeRepository: employeeRepo,
		SettingsRepository: settingsRepo,
	}
}
