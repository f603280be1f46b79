package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID parameter to prevent cross-company data access.
type AttendanceRepository interface {
	// Upsert writes one day record, replacing any existing row for the same
	// employee and date. A manual write clears auto-mark metadata.
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one date,
	// nil when none exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	// GetWeek retrieves all records in [weekStart, weekStart+6d] grouped by
	// employee and day code
	GetWeek(ctx context.Context, weekStart time.Time, companyID string) (WeeklyPayload, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)

	// BulkCreateAbsences inserts absence rows in one statement; used by the
	// nightly auto-mark job
	BulkCreateAbsences(ctx context.Context, absences []Attendance) error

	// Delete removes an attendance record
	Delete(ctx context.Context, id string, companyID string) error
}
