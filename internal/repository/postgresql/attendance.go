package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, company_id, date, day, status,
			auto_marked_reason, is_sunday_bonus, overtime_minutes, marked_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET status = EXCLUDED.status,
			auto_marked_reason = EXCLUDED.auto_marked_reason,
			is_sunday_bonus = EXCLUDED.is_sunday_bonus,
			overtime_minutes = EXCLUDED.overtime_minutes,
			marked_by = EXCLUDED.marked_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID, att.CompanyID, att.Date, att.Day, att.Status,
		att.AutoMarkedReason, att.IsSundayBonus, att.OvertimeMinutes, att.MarkedBy,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.company_id, a.date, a.day, a.status,
			   a.auto_marked_reason, a.is_sunday_bonus, a.overtime_minutes, a.marked_by,
			   a.created_at, a.updated_at, e.full_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.Day, &att.Status,
		&att.AutoMarkedReason, &att.IsSundayBonus, &att.OvertimeMinutes, &att.MarkedBy,
		&att.CreatedAt, &att.UpdatedAt, &att.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, date, day, status,
			   auto_marked_reason, is_sunday_bonus, overtime_minutes, marked_by,
			   created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date, companyID).Scan(
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.Day, &att.Status,
		&att.AutoMarkedReason, &att.IsSundayBonus, &att.OvertimeMinutes, &att.MarkedBy,
		&att.CreatedAt, &att.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// GetWeek implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetWeek(ctx context.Context, weekStart time.Time, companyID string) (attendance.WeeklyPayload, error) {
	q := GetQuerier(ctx, r.db)

	weekEnd := weekStart.AddDate(0, 0, 7)

	query := `
		SELECT employee_id, day, status, auto_marked_reason, is_sunday_bonus
		FROM attendances
		WHERE company_id = $1 AND date >= $2 AND date < $3
	`

	rows, err := q.Query(ctx, query, companyID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly attendance: %w", err)
	}
	defer rows.Close()

	payload := make(attendance.WeeklyPayload)
	for rows.Next() {
		var employeeID string
		var day attendance.DayCode
		var record attendance.DayRecord

		if err := rows.Scan(&employeeID, &day, &record.Status, &record.AutoMarkedReason, &record.IsSundayBonus); err != nil {
			return nil, fmt.Errorf("failed to scan weekly attendance row: %w", err)
		}

		if payload[employeeID] == nil {
			payload[employeeID] = make(attendance.WeekRecords)
		}
		payload[employeeID][day] = record
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weekly attendance: %w", err)
	}

	return payload, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause dynamically
	whereClauses := []string{"a.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereSQL := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendances a WHERE %s", whereSQL)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.company_id, a.date, a.day, a.status,
			   a.auto_marked_reason, a.is_sunday_bonus, a.overtime_minutes, a.marked_by,
			   a.created_at, a.updated_at, e.full_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.%s %s
		LIMIT $%d OFFSET $%d
	`, whereSQL, filter.SortBy, strings.ToUpper(filter.SortOrder), argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.Day, &att.Status,
			&att.AutoMarkedReason, &att.IsSundayBonus, &att.OvertimeMinutes, &att.MarkedBy,
			&att.CreatedAt, &att.UpdatedAt, &att.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}

// BulkCreateAbsences implements attendance.AttendanceRepository.
func (r *attendanceRepository) BulkCreateAbsences(ctx context.Context, absences []attendance.Attendance) error {
	if len(absences) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	// Multi-row insert; conflict means a record was written manually since
	// the roster was loaded, so leave it untouched.
	valueClauses := make([]string, 0, len(absences))
	args := make([]interface{}, 0, len(absences)*7)
	argIdx := 1

	for _, att := range absences {
		valueClauses = append(valueClauses, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			argIdx, argIdx+1, argIdx+2, argIdx+3, argIdx+4, argIdx+5, argIdx+6,
		))
		args = append(args,
			att.EmployeeID, att.CompanyID, att.Date, att.Day, att.Status,
			att.AutoMarkedReason, att.IsSundayBonus,
		)
		argIdx += 7
	}

	query := fmt.Sprintf(`
		INSERT INTO attendances (employee_id, company_id, date, day, status, auto_marked_reason, is_sunday_bonus)
		VALUES %s
		ON CONFLICT (employee_id, date) DO NOTHING
	`, strings.Join(valueClauses, ", "))

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to bulk create absences: %w", err)
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM attendances WHERE id = $1 AND company_id = $2 RETURNING id`

	var deletedID string
	if err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID); err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	return nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
