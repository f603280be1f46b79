package employee

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
)

type Employee struct {
	ID           string
	CompanyID    string
	EmployeeCode string
	FullName     string
	Email        *string
	Position     *string
	// OffDays holds the weekly recurring rest days, one flag per day code.
	// A missing or empty map means the employee has no off-day configuration.
	OffDays            map[attendance.DayCode]bool
	WeeklyRulesEnabled bool
	EmploymentStatus   EmploymentStatus
	BaseSalary         *decimal.Decimal
	HireDate           time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// FirstOffDay returns the earliest configured off day in Mon..Sun order, nil
// when no off day is set. Sunday participates here even though it is excluded
// from the weekly absence count.
func (e Employee) FirstOffDay() *attendance.DayCode {
	for _, day := range attendance.WeekDays {
		if e.OffDays[day] {
			d := day
			return &d
		}
	}
	return nil
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
