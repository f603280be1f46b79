package employee

import "context"

// EmployeeService defines business logic for the employee directory
type EmployeeService interface {
	// CreateEmployee adds an employee to the directory
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees retrieves employees with filters and pagination
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// UpdateEmployee updates a single employee
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// BulkUpdateEmployees applies one partial edit to many employees in a
	// single transaction
	BulkUpdateEmployees(ctx context.Context, req BulkUpdateRequest) (BulkUpdateResponse, error)

	// DeleteEmployee soft deletes an employee
	DeleteEmployee(ctx context.Context, id string) error
}
