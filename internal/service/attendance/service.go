package attendance

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/employee"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/events"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	bus *events.Bus
}

// MarkDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkDay(ctx context.Context, req attendance.MarkDayRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.After(today) {
		return attendance.AttendanceResponse{}, attendance.ErrDateInFuture
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// A manual write always clears auto-mark metadata; the day is now
	// vouched for by a person.
	att := attendance.Attendance{
		EmployeeID:      req.EmployeeID,
		CompanyID:       companyID,
		Date:            date,
		Day:             attendance.DayCodeForDate(date),
		Status:          attendance.DayStatus(strings.ToLower(req.Status)),
		OvertimeMinutes: req.OvertimeMinutes,
		MarkedBy:        &userID,
	}

	saved, err := s.AttendanceRepository.Upsert(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.bus.Publish(events.Event{
		Type:      events.TypeAttendanceUpdated,
		CompanyID: companyID,
		Payload:   saved.EmployeeID,
	})

	saved.EmployeeName = &emp.FullName
	return toResponse(saved), nil
}

// GetWeek implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetWeek(ctx context.Context, req attendance.WeekRequest) (attendance.WeeklyAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.WeeklyAttendanceResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.WeeklyAttendanceResponse{}, err
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		return attendance.WeeklyAttendanceResponse{}, fmt.Errorf("failed to parse week start: %w", err)
	}

	payload, err := s.AttendanceRepository.GetWeek(ctx, weekStart, companyID)
	if err != nil {
		return attendance.WeeklyAttendanceResponse{}, err
	}

	resp := attendance.WeeklyAttendanceResponse{
		WeekStart: req.WeekStart,
		Employees: make(map[string]map[attendance.DayCode]attendance.DayRecordResponse, len(payload)),
	}

	for employeeID, records := range payload {
		week := make(map[attendance.DayCode]attendance.DayRecordResponse, len(records))
		for day, record := range records {
			week[day] = attendance.DayRecordResponse{
				Status:           string(record.Status),
				AutoMarkedReason: record.AutoMarkedReason,
				IsSundayBonus:    record.IsSundayBonus,
			}
		}
		resp.Employees[employeeID] = week
	}

	return resp, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := s.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp := attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: make([]attendance.AttendanceResponse, 0, len(attendances)),
	}

	for _, att := range attendances {
		resp.Attendances = append(resp.Attendances, toResponse(att))
	}

	start := (filter.Page-1)*filter.Limit + 1
	end := start + len(attendances) - 1
	if total == 0 {
		start = 0
		end = 0
	}
	resp.Showing = fmt.Sprintf("Showing %d-%d of %d records", start, end, total)

	return resp, nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.AttendanceRepository.Delete(ctx, id, companyID); err != nil {
		return err
	}

	s.bus.Publish(events.Event{
		Type:      events.TypeAttendanceUpdated,
		CompanyID: companyID,
	})

	return nil
}

func toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:               att.ID,
		EmployeeID:       att.EmployeeID,
		Date:             att.Date.Format("2006-01-02"),
		Day:              att.Day,
		Status:           string(att.Status),
		AutoMarkedReason: att.AutoMarkedReason,
		IsSundayBonus:    att.IsSundayBonus,
		OvertimeMinutes:  att.OvertimeMinutes,
		MarkedBy:         att.MarkedBy,
		CreatedAt:        att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        att.UpdatedAt.Format(time.RFC3339),
	}
	if att.EmployeeName != nil {
		resp.EmployeeName = *att.EmployeeName
	}
	return resp
}

func claimsFromContext(ctx context.Context) (companyID string, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, ok = claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return companyID, userID, nil
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	bus *events.Bus,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		bus:                  bus,
	}
}
