package attendance

import (
	"time"
)

// DayCode is a day of the business week. Weeks are always Monday-anchored.
type DayCode string

const (
	Monday    DayCode = "mon"
	Tuesday   DayCode = "tue"
	Wednesday DayCode = "wed"
	Thursday  DayCode = "thu"
	Friday    DayCode = "fri"
	Saturday  DayCode = "sat"
	Sunday    DayCode = "sun"
)

// WeekDays is the canonical Mon..Sun ordering. Every weekly walk uses this
// slice so day ordering is never locale-dependent.
var WeekDays = [7]DayCode{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Offset returns the day's index in Mon..Sun order, or -1 for an unknown code.
func (d DayCode) Offset() int {
	for i, day := range WeekDays {
		if day == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the seven known day codes.
func (d DayCode) Valid() bool {
	return d.Offset() >= 0
}

// DayCodeForDate maps a calendar date to its day code.
func DayCodeForDate(t time.Time) DayCode {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// DateForDay returns the calendar date of a day code within the week that
// starts on weekStart (a Monday).
func DateForDay(weekStart time.Time, day DayCode) time.Time {
	return weekStart.AddDate(0, 0, day.Offset())
}

// DayStatus is the stored outcome for one employee on one day.
type DayStatus string

const (
	StatusPresent  DayStatus = "present"
	StatusAbsent   DayStatus = "absent"
	StatusOff      DayStatus = "off"
	StatusUnmarked DayStatus = "unmarked"
)

// Markable reports whether a status may be written by a user. "unmarked" is
// the absence of a record, never a stored value.
func (s DayStatus) Markable() bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusOff
}

// SundayBonusReason is the auto-mark annotation written by the weekly bonus
// job. The reconciliation grid surfaces it as a tooltip.
const SundayBonusReason = "Sunday bonus"

type Attendance struct {
	ID               string
	EmployeeID       string
	CompanyID        string
	Date             time.Time
	Day              DayCode
	Status           DayStatus
	AutoMarkedReason *string
	IsSundayBonus    bool
	OvertimeMinutes  *int
	MarkedBy         *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO
	EmployeeName *string
}

// DayRecord is the per-day slice of an attendance row that the weekly
// reconciliation grid consumes.
type DayRecord struct {
	Status           DayStatus
	AutoMarkedReason *string
	IsSundayBonus    bool
}

// WeekRecords maps day code -> record for one employee's week. Days with no
// stored row are simply absent from the map and derive as unmarked.
type WeekRecords map[DayCode]DayRecord

// WeeklyPayload maps employee_id -> week records for one Monday-anchored week.
type WeeklyPayload map[string]WeekRecords
