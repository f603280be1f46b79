package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkDay records or corrects one employee's outcome for one day
	MarkDay(ctx context.Context, req MarkDayRequest) (AttendanceResponse, error)

	// GetWeek returns the raw weekly payload for the reconciliation grid
	GetWeek(ctx context.Context, req WeekRequest) (WeeklyAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin/HR)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// DeleteAttendance removes an attendance record
	DeleteAttendance(ctx context.Context, id string) error
}
