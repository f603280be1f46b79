package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/payroll"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

// MonthlyCounts implements payroll.PayrollRepository.
func (r *payrollRepository) MonthlyCounts(ctx context.Context, month int, year int, companyID string) (map[string]payroll.AttendanceCounts, error) {
	q := GetQuerier(ctx, r.db)

	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	query := `
		SELECT employee_id,
			   COUNT(*) FILTER (WHERE status = 'present') AS present_days,
			   COUNT(*) FILTER (WHERE status = 'absent') AS absent_days,
			   COUNT(*) FILTER (WHERE status = 'off') AS off_days,
			   COUNT(*) FILTER (WHERE is_sunday_bonus) AS sunday_bonus_days,
			   COALESCE(SUM(overtime_minutes), 0) AS total_overtime_minutes
		FROM attendances
		WHERE company_id = $1 AND date >= $2 AND date < $3
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, companyID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly attendance: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]payroll.AttendanceCounts)
	for rows.Next() {
		var c payroll.AttendanceCounts
		err := rows.Scan(
			&c.EmployeeID, &c.PresentDays, &c.AbsentDays, &c.OffDays,
			&c.SundayBonusDays, &c.TotalOvertimeMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly counts: %w", err)
		}
		counts[c.EmployeeID] = c
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly counts: %w", err)
	}

	return counts, nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
