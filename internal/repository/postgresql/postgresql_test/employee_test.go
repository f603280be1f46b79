package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/employee"
	"github.com/staffdeck/staffdeck-backend-go/internal/repository/postgresql"
)

func newTestEmployee(companyID, code string) employee.Employee {
	salary := decimal.NewFromInt(2600)
	return employee.Employee{
		CompanyID:    companyID,
		EmployeeCode: code,
		FullName:     "Test Employee " + code,
		OffDays: map[attendance.DayCode]bool{
			attendance.Sunday: true,
		},
		WeeklyRulesEnabled: true,
		EmploymentStatus:   employee.EmploymentStatusActive,
		BaseSalary:         &salary,
		HireDate:           time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	}
}

func TestEmployeeRepository_CreateAndGetByID(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "employees")

	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)
	companyID := uuid.NewString()

	created, err := repo.Create(ctx, newTestEmployee(companyID, "EMP-001"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", got.EmployeeCode)
	assert.True(t, got.OffDays[attendance.Sunday])
	assert.False(t, got.OffDays[attendance.Monday])
	assert.True(t, got.WeeklyRulesEnabled)
}

func TestEmployeeRepository_Create_DuplicateCode(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "employees")

	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)
	companyID := uuid.NewString()

	_, err := repo.Create(ctx, newTestEmployee(companyID, "EMP-001"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newTestEmployee(companyID, "EMP-001"))
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestEmployeeRepository_GetByID_CompanyIsolation(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "employees")

	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	created, err := repo.Create(ctx, newTestEmployee(uuid.NewString(), "EMP-001"))
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, created.ID, uuid.NewString())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_List_Filters(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "employees")

	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)
	companyID := uuid.NewString()

	first := newTestEmployee(companyID, "EMP-001")
	first.FullName = "Alice Anders"
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second := newTestEmployee(companyID, "EMP-002")
	second.FullName = "Bob Brown"
	second.EmploymentStatus = employee.EmploymentStatusResigned
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	search := "alice"
	employees, total, err := repo.List(ctx, employee.EmployeeFilter{
		Search: &search,
		Page:   1,
		Limit:  10,
	}, companyID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, employees, 1)
	assert.Equal(t, "Alice Anders", employees[0].FullName)

	active, err := repo.GetActiveByCompanyID(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "EMP-001", active[0].EmployeeCode)
}

func TestEmployeeRepository_BulkUpdate(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "employees")

	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)
	companyID := uuid.NewString()

	a, err := repo.Create(ctx, newTestEmployee(companyID, "EMP-001"))
	require.NoError(t, err)
	b, err := repo.Create(ctx, newTestEmployee(companyID, "EMP-002"))
	require.NoError(t, err)

	position := "Barista"
	changed, err := repo.BulkUpdate(ctx, employee.BulkUpdateRequest{
		EmployeeIDs: []string{a.ID, b.ID},
		Position:    &position,
		OffDays:     map[string]bool{"wed": true},
	}, companyID)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	got, err := repo.GetByID(ctx, a.ID, companyID)
	require.NoError(t, err)
	require.NotNil(t, got.Position)
	assert.Equal(t, "Barista", *got.Position)
	assert.True(t, got.OffDays[attendance.Wednesday])
	assert.False(t, got.OffDays[attendance.Sunday])
}

func TestEmployeeRepository_Delete_SoftDeletes(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "employees")

	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)
	companyID := uuid.NewString()

	created, err := repo.Create(ctx, newTestEmployee(companyID, "EMP-001"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID, companyID))

	_, err = repo.GetByID(ctx, created.ID, companyID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
