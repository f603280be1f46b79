package payroll

import "context"

// PayrollRepository aggregates attendance rows for payroll derivation.
type PayrollRepository interface {
	// MonthlyCounts returns per-employee attendance aggregates for one
	// calendar month, keyed by employee ID
	MonthlyCounts(ctx context.Context, month int, year int, companyID string) (map[string]AttendanceCounts, error)
}
