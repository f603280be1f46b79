package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/repository/postgresql"
)

var testWeekStart = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // a Monday

func TestAttendanceRepository_Upsert_ReplacesExisting(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "attendances", "employees")

	ctx := context.Background()
	employeeRepo := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	companyID := uuid.NewString()

	emp, err := employeeRepo.Create(ctx, newTestEmployee(companyID, "EMP-001"))
	require.NoError(t, err)

	reason := "No attendance logged"
	first, err := repo.Upsert(ctx, attendance.Attendance{
		EmployeeID:       emp.ID,
		CompanyID:        companyID,
		Date:             testWeekStart,
		Day:              attendance.Monday,
		Status:           attendance.StatusAbsent,
		AutoMarkedReason: &reason,
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	// A second write for the same employee and date replaces the row and
	// clears the auto-mark annotation.
	second, err := repo.Upsert(ctx, attendance.Attendance{
		EmployeeID: emp.ID,
		CompanyID:  companyID,
		Date:       testWeekStart,
		Day:        attendance.Monday,
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.GetByEmployeeAndDate(ctx, emp.ID, testWeekStart, companyID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.Nil(t, got.AutoMarkedReason)
}

func TestAttendanceRepository_GetByEmployeeAndDate_NoRecord(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "attendances")

	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	got, err := repo.GetByEmployeeAndDate(ctx, uuid.NewString(), testWeekStart, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAttendanceRepository_GetWeek_GroupsByEmployeeAndDay(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "attendances", "employees")

	ctx := context.Background()
	employeeRepo := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	companyID := uuid.NewString()

	emp, err := employeeRepo.Create(ctx, newTestEmployee(companyID, "EMP-001"))
	require.NoError(t, err)

	for _, day := range []attendance.DayCode{attendance.Monday, attendance.Tuesday} {
		_, err := repo.Upsert(ctx, attendance.Attendance{
			EmployeeID: emp.ID,
			CompanyID:  companyID,
			Date:       attendance.DateForDay(testWeekStart, day),
			Day:        day,
			Status:     attendance.StatusPresent,
		})
		require.NoError(t, err)
	}

	// A record in the following week must not leak into this one
	_, err = repo.Upsert(ctx, attendance.Attendance{
		EmployeeID: emp.ID,
		CompanyID:  companyID,
		Date:       testWeekStart.AddDate(0, 0, 7),
		Day:        attendance.Monday,
		Status:     attendance.StatusAbsent,
	})
	require.NoError(t, err)

	payload, err := repo.GetWeek(ctx, testWeekStart, companyID)
	require.NoError(t, err)

	records := payload[emp.ID]
	require.Len(t, records, 2)
	assert.Equal(t, attendance.StatusPresent, records[attendance.Monday].Status)
	assert.Equal(t, attendance.StatusPresent, records[attendance.Tuesday].Status)
}

func TestAttendanceRepository_BulkCreateAbsences_ManualWinsOverAuto(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "attendances", "employees")

	ctx := context.Background()
	employeeRepo := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	companyID := uuid.NewString()

	emp, err := employeeRepo.Create(ctx, newTestEmployee(companyID, "EMP-001"))
	require.NoError(t, err)

	// Manually marked present before the nightly job runs
	_, err = repo.Upsert(ctx, attendance.Attendance{
		EmployeeID: emp.ID,
		CompanyID:  companyID,
		Date:       testWeekStart,
		Day:        attendance.Monday,
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)

	reason := "No attendance logged"
	err = repo.BulkCreateAbsences(ctx, []attendance.Attendance{
		{
			EmployeeID:       emp.ID,
			CompanyID:        companyID,
			Date:             testWeekStart,
			Day:              attendance.Monday,
			Status:           attendance.StatusAbsent,
			AutoMarkedReason: &reason,
		},
		{
			EmployeeID:       emp.ID,
			CompanyID:        companyID,
			Date:             attendance.DateForDay(testWeekStart, attendance.Tuesday),
			Day:              attendance.Tuesday,
			Status:           attendance.StatusAbsent,
			AutoMarkedReason: &reason,
		},
	})
	require.NoError(t, err)

	monday, err := repo.GetByEmployeeAndDate(ctx, emp.ID, testWeekStart, companyID)
	require.NoError(t, err)
	require.NotNil(t, monday)
	assert.Equal(t, attendance.StatusPresent, monday.Status)

	tuesday, err := repo.GetByEmployeeAndDate(ctx, emp.ID, attendance.DateForDay(testWeekStart, attendance.Tuesday), companyID)
	require.NoError(t, err)
	require.NotNil(t, tuesday)
	assert.Equal(t, attendance.StatusAbsent, tuesday.Status)
	require.NotNil(t, tuesday.AutoMarkedReason)
	assert.Equal(t, reason, *tuesday.AutoMarkedReason)
}
