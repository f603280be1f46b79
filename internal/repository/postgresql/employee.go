package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/employee"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

const employeeColumns = `
	id, company_id, employee_code, full_name, email, position,
	off_mon, off_tue, off_wed, off_thu, off_fri, off_sat, off_sun,
	weekly_rules_enabled, employment_status, base_salary, hire_date,
	created_at, updated_at, deleted_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var off [7]bool

	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Position,
		&off[0], &off[1], &off[2], &off[3], &off[4], &off[5], &off[6],
		&emp.WeeklyRulesEnabled, &emp.EmploymentStatus, &emp.BaseSalary, &emp.HireDate,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	emp.OffDays = make(map[attendance.DayCode]bool)
	for i, day := range attendance.WeekDays {
		if off[i] {
			emp.OffDays[day] = true
		}
	}

	return emp, nil
}

// offDayValues expands the off-day map into seven positional booleans in
// Mon..Sun column order.
func offDayValues(offDays map[attendance.DayCode]bool) [7]bool {
	var off [7]bool
	for i, day := range attendance.WeekDays {
		off[i] = offDays[day]
	}
	return off
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	off := offDayValues(emp.OffDays)

	query := `
		INSERT INTO employees (
			company_id, employee_code, full_name, email, position,
			off_mon, off_tue, off_wed, off_thu, off_fri, off_sat, off_sun,
			weekly_rules_enabled, employment_status, base_salary, hire_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.CompanyID, emp.EmployeeCode, emp.FullName, emp.Email, emp.Position,
		off[0], off[1], off[2], off[3], off[4], off[5], off[6],
		emp.WeeklyRulesEnabled, emp.EmploymentStatus, emp.BaseSalary, emp.HireDate,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`, employeeColumns)

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause dynamically
	whereClauses := []string{"company_id = $1", "deleted_at IS NULL"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Search != nil && *filter.Search != "" {
		whereClauses = append(whereClauses,
			fmt.Sprintf("(full_name ILIKE $%d OR employee_code ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	if filter.Position != nil && *filter.Position != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("position = $%d", argIdx))
		args = append(args, *filter.Position)
		argIdx++
	}

	if filter.EmploymentStatus != nil && *filter.EmploymentStatus != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("employment_status = $%d", argIdx))
		args = append(args, *filter.EmploymentStatus)
		argIdx++
	}

	whereSQL := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees WHERE %s", whereSQL)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, employeeColumns, whereSQL, filter.SortBy, strings.ToUpper(filter.SortOrder), argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, total, nil
}

// GetActiveByCompanyID implements employee.EmployeeRepository.
func (r *employeeRepository) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE company_id = $1 AND employment_status = 'active' AND deleted_at IS NULL
		ORDER BY full_name ASC
	`, employeeColumns)

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// CompanyIDs implements employee.EmployeeRepository.
func (r *employeeRepository) CompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT DISTINCT company_id FROM employees WHERE deleted_at IS NULL`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list company IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company IDs: %w", err)
	}

	return ids, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	off := offDayValues(emp.OffDays)

	query := `
		UPDATE employees
		SET full_name = $1, email = $2, position = $3,
			off_mon = $4, off_tue = $5, off_wed = $6, off_thu = $7,
			off_fri = $8, off_sat = $9, off_sun = $10,
			weekly_rules_enabled = $11, employment_status = $12, base_salary = $13,
			updated_at = NOW()
		WHERE id = $14 AND company_id = $15 AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		emp.FullName, emp.Email, emp.Position,
		off[0], off[1], off[2], off[3], off[4], off[5], off[6],
		emp.WeeklyRulesEnabled, emp.EmploymentStatus, emp.BaseSalary,
		emp.ID, emp.CompanyID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// BulkUpdate implements employee.EmployeeRepository.
func (r *employeeRepository) BulkUpdate(ctx context.Context, req employee.BulkUpdateRequest, companyID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	// Build SET clause from the non-nil fields only
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIdx := 1

	if req.Position != nil {
		setClauses = append(setClauses, fmt.Sprintf("position = $%d", argIdx))
		args = append(args, *req.Position)
		argIdx++
	}

	if req.EmploymentStatus != nil {
		setClauses = append(setClauses, fmt.Sprintf("employment_status = $%d", argIdx))
		args = append(args, strings.ToLower(*req.EmploymentStatus))
		argIdx++
	}

	if req.WeeklyRulesEnabled != nil {
		setClauses = append(setClauses, fmt.Sprintf("weekly_rules_enabled = $%d", argIdx))
		args = append(args, *req.WeeklyRulesEnabled)
		argIdx++
	}

	if req.OffDays != nil {
		offDays := make(map[attendance.DayCode]bool, len(req.OffDays))
		for code, flag := range req.OffDays {
			offDays[attendance.DayCode(code)] = flag
		}
		off := offDayValues(offDays)
		offColumns := []string{"off_mon", "off_tue", "off_wed", "off_thu", "off_fri", "off_sat", "off_sun"}
		for i, col := range offColumns {
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argIdx))
			args = append(args, off[i])
			argIdx++
		}
	}

	query := fmt.Sprintf(`
		UPDATE employees
		SET %s
		WHERE id = ANY($%d) AND company_id = $%d AND deleted_at IS NULL
	`, strings.Join(setClauses, ", "), argIdx, argIdx+1)
	args = append(args, req.EmployeeIDs, companyID)

	cmdTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update employees: %w", err)
	}

	return int(cmdTag.RowsAffected()), nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	if err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
