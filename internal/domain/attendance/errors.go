package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDateInFuture       = errors.New("cannot mark attendance for a future date")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
