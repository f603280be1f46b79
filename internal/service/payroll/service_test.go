package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/employee"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
)

func salaryEmployee(salary string, offDays map[attendance.DayCode]bool) employee.Employee {
	base := decimal.RequireFromString(salary)
	return employee.Employee{
		ID:           "emp-1",
		EmployeeCode: "1000-0001",
		FullName:     "Jane Doe",
		BaseSalary:   &base,
		OffDays:      offDays,
	}
}

func TestWorkingDays(t *testing.T) {
	// June 2026 has 30 days and 4 Sundays.
	emp := salaryEmployee("3000", map[attendance.DayCode]bool{attendance.Sunday: true})
	assert.Equal(t, 26, WorkingDays(emp, 6, 2026))

	// No off days: every calendar day counts.
	full := salaryEmployee("3000", nil)
	assert.Equal(t, 30, WorkingDays(full, 6, 2026))

	// Two off days per week in August 2026 (31 days, 5 Saturdays, 5 Sundays).
	weekend := salaryEmployee("3000", map[attendance.DayCode]bool{
		attendance.Saturday: true,
		attendance.Sunday:   true,
	})
	assert.Equal(t, 21, WorkingDays(weekend, 8, 2026))
}

func TestBuildSummary_AbsenceDeduction(t *testing.T) {
	emp := salaryEmployee("2600", map[attendance.DayCode]bool{attendance.Sunday: true})
	counts := payroll.AttendanceCounts{
		EmployeeID:  "emp-1",
		PresentDays: 24,
		AbsentDays:  2,
	}

	// June 2026: 26 working days, daily rate 100.
	summary := BuildSummary(emp, counts, 6, 2026, decimal.Zero)

	assert.Equal(t, 26, summary.WorkingDays)
	assert.True(t, summary.AbsenceDeduct.Equal(decimal.RequireFromString("200")), "got %s", summary.AbsenceDeduct)
	assert.True(t, summary.NetPay.Equal(decimal.RequireFromString("2400")), "got %s", summary.NetPay)
}

func TestBuildSummary_OvertimePay(t *testing.T) {
	emp := salaryEmployee("2600", map[attendance.DayCode]bool{attendance.Sunday: true})
	counts := payroll.AttendanceCounts{
		EmployeeID:           "emp-1",
		PresentDays:          26,
		TotalOvertimeMinutes: 90,
	}

	summary := BuildSummary(emp, counts, 6, 2026, decimal.RequireFromString("0.5"))

	assert.True(t, summary.OvertimePay.Equal(decimal.RequireFromString("45")), "got %s", summary.OvertimePay)
	assert.True(t, summary.NetPay.Equal(decimal.RequireFromString("2645")), "got %s", summary.NetPay)
}

func TestBuildSummary_NoSalaryConfigured(t *testing.T) {
	emp := employee.Employee{ID: "emp-2", FullName: "No Salary"}
	counts := payroll.AttendanceCounts{AbsentDays: 3, TotalOvertimeMinutes: 30}

	summary := BuildSummary(emp, counts, 6, 2026, decimal.RequireFromString("1"))

	assert.True(t, summary.BaseSalary.IsZero())
	assert.True(t, summary.AbsenceDeduct.IsZero())
	assert.True(t, summary.NetPay.Equal(decimal.RequireFromString("30")), "got %s", summary.NetPay)
}

func TestBuildSummary_NoAttendanceRows(t *testing.T) {
	emp := salaryEmployee("2600", map[attendance.DayCode]bool{attendance.Sunday: true})

	// Zero-value counts: a month with no attendance data deducts nothing.
	summary := BuildSummary(emp, payroll.AttendanceCounts{}, 6, 2026, decimal.RequireFromString("0.5"))

	assert.True(t, summary.NetPay.Equal(decimal.RequireFromString("2600")), "got %s", summary.NetPay)
	assert.Equal(t, 0, summary.AbsentDays)
	assert.Equal(t, 0, summary.OvertimeMinutes)
}
