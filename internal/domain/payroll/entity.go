package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceCounts aggregates one employee's attendance rows for one month.
type AttendanceCounts struct {
	EmployeeID           string
	PresentDays          int
	AbsentDays           int
	OffDays              int
	SundayBonusDays      int
	TotalOvertimeMinutes int
}

// PayrollSummary is the derived monthly overview line for one employee.
// It is recomputed on every read; payroll runs themselves are out of scope.
type PayrollSummary struct {
	EmployeeID      string
	EmployeeName    string
	EmployeeCode    string
	PeriodMonth     int
	PeriodYear      int
	WorkingDays     int // days in the month minus the employee's weekly off days
	PresentDays     int
	AbsentDays      int
	SundayBonusDays int
	OvertimeMinutes int
	BaseSalary      decimal.Decimal
	OvertimePay     decimal.Decimal
	AbsenceDeduct   decimal.Decimal
	NetPay          decimal.Decimal
	GeneratedAt     time.Time
}
