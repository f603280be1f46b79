package reconciliation

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/employee"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/reconciliation"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/settings"
)

type ReconciliationServiceImpl struct {
	employee.EmployeeRepository
	attendance.AttendanceRepository
	settingsService settings.SettingsService
	overrides       reconciliation.OverrideStore
}

// BuildWeekView derives one employee's weekly grid from the raw inputs. Pure:
// it reads nothing but its arguments, so identical inputs always yield an
// identical view.
//
// The penalty fires only when a threshold is configured, the employee has
// weekly rules enabled, an off day is configured, and the Mon-Sat absence
// count reaches the threshold. A nil threshold degrades to plain rendering
// rather than erroring.
func BuildWeekView(emp employee.Employee, weekStart string, records attendance.WeekRecords, threshold *int, isIgnored func(attendance.DayCode) bool) reconciliation.WeekView {
	firstOff := emp.FirstOffDay()

	// Sunday is excluded from the count by policy; it still renders and still
	// participates in first-off-day selection.
	absentCount := 0
	for _, day := range attendance.WeekDays[:6] {
		if rec, ok := records[day]; ok && rec.Status == attendance.StatusAbsent {
			absentCount++
		}
	}

	penalty := threshold != nil &&
		emp.WeeklyRulesEnabled &&
		firstOff != nil &&
		absentCount >= *threshold

	view := reconciliation.WeekView{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		WeekStart:    weekStart,
		AbsentCount:  absentCount,
		Penalty:      penalty,
		FirstOffDay:  firstOff,
	}

	for i, day := range attendance.WeekDays {
		view.Days[i] = deriveChip(day, records, firstOff, penalty, isIgnored)
	}

	return view
}

// deriveChip picks the render category for one day. Exactly one case applies;
// the order is a fixed precedence, not a style choice.
func deriveChip(day attendance.DayCode, records attendance.WeekRecords, firstOff *attendance.DayCode, penalty bool, isIgnored func(attendance.DayCode) bool) reconciliation.DayChip {
	rec, ok := records[day]
	isFirstOff := firstOff != nil && day == *firstOff

	switch {
	case !ok:
		return reconciliation.DayChip{Day: day, Status: attendance.StatusUnmarked, Category: reconciliation.ChipUnmarked}

	case rec.Status == attendance.StatusOff:
		return reconciliation.DayChip{Day: day, Status: attendance.StatusOff, Category: reconciliation.ChipOffDay}

	case rec.Status == attendance.StatusPresent && rec.AutoMarkedReason != nil:
		return reconciliation.DayChip{
			Day:      day,
			Status:   attendance.StatusPresent,
			Category: reconciliation.ChipAutoPresent,
			Tooltip:  rec.AutoMarkedReason,
		}

	case rec.Status == attendance.StatusPresent && penalty && isFirstOff:
		// Worked on what would have been the penalty day.
		return reconciliation.DayChip{Day: day, Status: attendance.StatusPresent, Category: reconciliation.ChipPenaltyPresent}

	case rec.Status == attendance.StatusAbsent && penalty && isFirstOff:
		if isIgnored != nil && isIgnored(day) {
			return reconciliation.DayChip{Day: day, Status: attendance.StatusAbsent, Category: reconciliation.ChipPenaltyReverted}
		}
		return reconciliation.DayChip{
			Day:         day,
			Status:      attendance.StatusAbsent,
			Category:    reconciliation.ChipPenaltyAbsent,
			Overridable: true,
		}

	case rec.Status == attendance.StatusPresent:
		return reconciliation.DayChip{Day: day, Status: attendance.StatusPresent, Category: reconciliation.ChipPresent}

	case rec.Status == attendance.StatusAbsent:
		return reconciliation.DayChip{Day: day, Status: attendance.StatusAbsent, Category: reconciliation.ChipAbsent}

	default:
		// A stored status outside the known set derives as unmarked rather
		// than erroring or masquerading as an absence.
		return reconciliation.DayChip{Day: day, Status: attendance.StatusUnmarked, Category: reconciliation.ChipUnmarked}
	}
}

// WeeklyBoard implements reconciliation.ReconciliationService.
func (s *ReconciliationServiceImpl) WeeklyBoard(ctx context.Context, req reconciliation.BoardRequest) (reconciliation.BoardResponse, error) {
	if err := req.Validate(); err != nil {
		return reconciliation.BoardResponse{}, err
	}

	companyID, sessionID, err := claimsFromContext(ctx)
	if err != nil {
		return reconciliation.BoardResponse{}, err
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		return reconciliation.BoardResponse{}, fmt.Errorf("failed to parse week start: %w", err)
	}

	roster, err := s.EmployeeRepository.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return reconciliation.BoardResponse{}, fmt.Errorf("failed to load roster: %w", err)
	}

	payload, err := s.AttendanceRepository.GetWeek(ctx, weekStart, companyID)
	if err != nil {
		return reconciliation.BoardResponse{}, fmt.Errorf("failed to load weekly attendance: %w", err)
	}

	// Fails open: a missing or unreadable threshold disables penalty
	// derivation instead of blocking the board.
	threshold := s.settingsService.WeeklyAbsentThreshold(ctx, companyID)

	resp := reconciliation.BoardResponse{
		WeekStart:      req.WeekStart,
		Threshold:      threshold,
		PenaltyEnabled: threshold != nil,
		Employees:      make([]reconciliation.WeekView, 0, len(roster)),
	}

	for _, emp := range roster {
		empID := emp.ID
		isIgnored := func(day attendance.DayCode) bool {
			return s.overrides.IsIgnored(reconciliation.OverrideKey{
				SessionID:  sessionID,
				EmployeeID: empID,
				WeekStart:  req.WeekStart,
				Day:        day,
			})
		}
		resp.Employees = append(resp.Employees, BuildWeekView(emp, req.WeekStart, payload[empID], threshold, isIgnored))
	}

	return resp, nil
}

// ToggleOverride implements reconciliation.ReconciliationService.
func (s *ReconciliationServiceImpl) ToggleOverride(ctx context.Context, req reconciliation.ToggleOverrideRequest) (reconciliation.ToggleOverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return reconciliation.ToggleOverrideResponse{}, err
	}

	companyID, sessionID, err := claimsFromContext(ctx)
	if err != nil {
		return reconciliation.ToggleOverrideResponse{}, err
	}

	day := attendance.DayCode(req.Day)

	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		return reconciliation.ToggleOverrideResponse{}, fmt.Errorf("failed to parse week start: %w", err)
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return reconciliation.ToggleOverrideResponse{}, err
	}

	payload, err := s.AttendanceRepository.GetWeek(ctx, weekStart, companyID)
	if err != nil {
		return reconciliation.ToggleOverrideResponse{}, fmt.Errorf("failed to load weekly attendance: %w", err)
	}

	threshold := s.settingsService.WeeklyAbsentThreshold(ctx, companyID)

	// Derive the chip without any override applied: only a day that renders
	// as a penalty absence may be toggled.
	view := BuildWeekView(emp, req.WeekStart, payload[emp.ID], threshold, nil)
	chip := view.Days[day.Offset()]
	if chip.Category != reconciliation.ChipPenaltyAbsent {
		return reconciliation.ToggleOverrideResponse{}, reconciliation.ErrDayNotOverridable
	}

	ignored := s.overrides.Toggle(reconciliation.OverrideKey{
		SessionID:  sessionID,
		EmployeeID: req.EmployeeID,
		WeekStart:  req.WeekStart,
		Day:        day,
	})

	category := reconciliation.ChipPenaltyAbsent
	if ignored {
		category = reconciliation.ChipPenaltyReverted
	}

	return reconciliation.ToggleOverrideResponse{
		EmployeeID: req.EmployeeID,
		WeekStart:  req.WeekStart,
		Day:        day,
		Ignored:    ignored,
		Category:   category,
	}, nil
}

func claimsFromContext(ctx context.Context) (companyID string, sessionID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	sessionID, ok = claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", "", fmt.Errorf("session_id claim is missing or invalid")
	}

	return companyID, sessionID, nil
}

func NewReconciliationService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	settingsService settings.SettingsService,
	overrides reconciliation.OverrideStore,
) reconciliation.ReconciliationService {
	return &ReconciliationServiceImpl{
		EmployeeRepository:   employeeRepo,
		AttendanceRepository: attendanceRepo,
		settingsService:      settingsService,
		overrides:            overrides,
	}
}
