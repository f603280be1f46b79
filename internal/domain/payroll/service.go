package payroll

import "context"

// PayrollService defines business logic for the payroll overview
type PayrollService interface {
	// Overview derives the monthly payroll summary for every active employee
	Overview(ctx context.Context, req OverviewRequest) (OverviewResponse, error)
}
