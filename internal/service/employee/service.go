package employee

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/employee"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/database"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/events"
	"github.com/staffdeck/staffdeck-backend-go/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
	bus *events.Bus
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)

	emp := employee.Employee{
		CompanyID:          companyID,
		EmployeeCode:       req.EmployeeCode,
		FullName:           req.FullName,
		Email:              req.Email,
		Position:           req.Position,
		OffDays:            toOffDayMap(req.OffDays),
		WeeklyRulesEnabled: req.WeeklyRulesEnabled,
		EmploymentStatus:   employee.EmploymentStatusActive,
		HireDate:           hireDate,
	}

	if req.BaseSalary != nil {
		salary, err := decimal.NewFromString(*req.BaseSalary)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to parse base salary: %w", err)
		}
		emp.BaseSalary = &salary
	}

	created, err := s.EmployeeRepository.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.bus.Publish(events.Event{
		Type:      events.TypeEmployeeChanged,
		CompanyID: companyID,
		Payload:   created.ID,
	})

	return toResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter, companyID)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	resp := employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  make([]employee.EmployeeResponse, 0, len(employees)),
	}

	for _, emp := range employees {
		resp.Employees = append(resp.Employees, toResponse(emp))
	}

	start := (filter.Page-1)*filter.Limit + 1
	end := start + len(employees) - 1
	if total == 0 {
		start = 0
		end = 0
	}
	resp.Showing = fmt.Sprintf("Showing %d-%d of %d employees", start, end, total)

	return resp, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.Position != nil {
		emp.Position = req.Position
	}
	if req.OffDays != nil {
		emp.OffDays = toOffDayMap(req.OffDays)
	}
	if req.WeeklyRulesEnabled != nil {
		emp.WeeklyRulesEnabled = *req.WeeklyRulesEnabled
	}
	if req.EmploymentStatus != nil {
		emp.EmploymentStatus = employee.EmploymentStatus(strings.ToLower(*req.EmploymentStatus))
	}
	if req.BaseSalary != nil {
		salary, err := decimal.NewFromString(*req.BaseSalary)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to parse base salary: %w", err)
		}
		emp.BaseSalary = &salary
	}

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.bus.Publish(events.Event{
		Type:      events.TypeEmployeeChanged,
		CompanyID: companyID,
		Payload:   emp.ID,
	})

	return toResponse(emp), nil
}

// BulkUpdateEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) BulkUpdateEmployees(ctx context.Context, req employee.BulkUpdateRequest) (employee.BulkUpdateResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.BulkUpdateResponse{}, err
	}
	if len(req.EmployeeIDs) == 0 {
		return employee.BulkUpdateResponse{}, employee.ErrEmptyBulkSelection
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return employee.BulkUpdateResponse{}, err
	}

	var updated int
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {

		// Every selected employee must exist before any row is written; a
		// partial bulk edit is worse than a failed one.
		for _, id := range req.EmployeeIDs {
			if _, err := s.EmployeeRepository.GetByID(txCtx, id, companyID); err != nil {
				return err
			}
		}

		updated, err = s.EmployeeRepository.BulkUpdate(txCtx, req, companyID)
		return err
	})
	if err != nil {
		return employee.BulkUpdateResponse{}, err
	}

	s.bus.Publish(events.Event{
		Type:      events.TypeEmployeeChanged,
		CompanyID: companyID,
		Payload:   req.EmployeeIDs,
	})

	return employee.BulkUpdateResponse{
		UpdatedCount: updated,
		EmployeeIDs:  req.EmployeeIDs,
	}, nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.EmployeeRepository.Delete(ctx, id, companyID); err != nil {
		return err
	}

	s.bus.Publish(events.Event{
		Type:      events.TypeEmployeeChanged,
		CompanyID: companyID,
		Payload:   id,
	})

	return nil
}

func toOffDayMap(offDays map[string]bool) map[attendance.DayCode]bool {
	if offDays == nil {
		return nil
	}
	result := make(map[attendance.DayCode]bool, len(offDays))
	for code, flag := range offDays {
		if flag {
			result[attendance.DayCode(code)] = true
		}
	}
	return result
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	offDays := make(map[string]bool, len(emp.OffDays))
	for day, flag := range emp.OffDays {
		offDays[string(day)] = flag
	}

	resp := employee.EmployeeResponse{
		ID:                 emp.ID,
		EmployeeCode:       emp.EmployeeCode,
		FullName:           emp.FullName,
		Email:              emp.Email,
		Position:           emp.Position,
		OffDays:            offDays,
		WeeklyRulesEnabled: emp.WeeklyRulesEnabled,
		EmploymentStatus:   string(emp.EmploymentStatus),
		HireDate:           emp.HireDate.Format("2006-01-02"),
		CreatedAt:          emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          emp.UpdatedAt.Format(time.RFC3339),
	}

	if emp.BaseSalary != nil {
		salary := emp.BaseSalary.StringFixed(2)
		resp.BaseSalary = &salary
	}

	return resp
}

func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func NewEmployeeService(db *database.DB, employeeRepo employee.EmployeeRepository, bus *events.Bus) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepo,
		bus:                bus,
	}
}
