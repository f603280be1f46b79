package employee

import "context"

// EmployeeRepository defines data access methods for the employee directory.
// All methods include companyID parameter to prevent cross-company data access.
type EmployeeRepository interface {
	// Create creates a new employee record
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByID retrieves an employee by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// List retrieves employees with filters and pagination
	List(ctx context.Context, filter EmployeeFilter, companyID string) ([]Employee, int64, error)

	// GetActiveByCompanyID retrieves all active employees with their off-day
	// configuration; this is the roster input of the reconciliation grid
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)

	// CompanyIDs lists every company with at least one employee; used by the
	// cron jobs to iterate tenants
	CompanyIDs(ctx context.Context) ([]string, error)

	// Update updates an existing employee record
	Update(ctx context.Context, emp Employee) error

	// BulkUpdate applies the same partial edit to many employees and returns
	// how many rows changed
	BulkUpdate(ctx context.Context, req BulkUpdateRequest, companyID string) (int, error)

	// Delete soft deletes an employee
	Delete(ctx context.Context, id string, companyID string) error
}
