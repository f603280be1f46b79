package reconciliation

import "errors"

var (
	// ErrDayNotOverridable is returned when an override is requested for a
	// day that does not currently render as a penalty chip.
	ErrDayNotOverridable = errors.New("day is not a penalty day and cannot be overridden")

	ErrEmployeeNotOnBoard = errors.New("employee is not on the weekly board")
)
