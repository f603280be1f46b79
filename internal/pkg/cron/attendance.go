package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/employee"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/settings"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/events"
)

const autoAbsentReason = "No attendance logged"

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	settingsRepo   settings.SettingsRepository
	bus            *events.Bus
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	bus *events.Bus,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		settingsRepo:   settingsRepo,
		bus:            bus,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
	scheduler.AddJob("sunday_bonus_auto_mark", 1*time.Hour, j.SundayBonusAutoMark)
}

// MarkAbsentEmployees backfills yesterday for every employee without a record:
// their configured off day gets an off record, anything else an auto-marked
// absence. Manual writes always win; inserts never overwrite.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run at 01:00-01:59 UTC, after the day has closed everywhere relevant
	if time.Now().UTC().Hour() != 1 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	day := attendance.DayCodeForDate(yesterday)

	companyIDs, err := j.employeeRepo.CompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	reason := autoAbsentReason
	totalMarked := 0

	for _, companyID := range companyIDs {
		roster, err := j.employeeRepo.GetActiveByCompanyID(ctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to load roster for company %s: %w", companyID, err)
		}

		var absences []attendance.Attendance
		for _, emp := range roster {
			existing, err := j.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, yesterday, companyID)
			if err != nil {
				return fmt.Errorf("failed to check existing record: %w", err)
			}
			if existing != nil {
				continue
			}

			status := attendance.StatusAbsent
			var autoReason *string
			if emp.OffDays[day] {
				status = attendance.StatusOff
			} else {
				autoReason = &reason
			}

			absences = append(absences, attendance.Attendance{
				EmployeeID:       emp.ID,
				CompanyID:        companyID,
				Date:             yesterday,
				Day:              day,
				Status:           status,
				AutoMarkedReason: autoReason,
			})
		}

		if len(absences) == 0 {
			continue
		}

		if err := j.attendanceRepo.BulkCreateAbsences(ctx, absences); err != nil {
			return fmt.Errorf("failed to create absences for company %s: %w", companyID, err)
		}

		totalMarked += len(absences)
		j.bus.Publish(events.Event{
			Type:      events.TypeAttendanceUpdated,
			CompanyID: companyID,
		})
	}

	if totalMarked > 0 {
		slog.Info("Cron: auto-marked missing attendance", "date", yesterday.Format("2006-01-02"), "count", totalMarked)
	}

	return nil
}

// SundayBonusAutoMark marks Sunday as auto-present for employees with a clean
// Mon-Sat week, for companies that enabled the bonus. The record carries the
// bonus annotation the weekly grid shows as a tooltip.
func (j *AttendanceJobs) SundayBonusAutoMark(ctx context.Context) error {
	now := time.Now().UTC()

	// Only run on Sundays at 20:00-20:59 UTC
	if now.Weekday() != time.Sunday || now.Hour() != 20 {
		return nil
	}

	sunday := now.Truncate(24 * time.Hour)
	weekStart := sunday.AddDate(0, 0, -6)

	companyIDs, err := j.employeeRepo.CompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	reason := attendance.SundayBonusReason
	totalMarked := 0

	for _, companyID := range companyIDs {
		companySettings, err := j.settingsRepo.GetByCompanyID(ctx, companyID)
		if err != nil || !companySettings.SundayBonusEnabled {
			continue
		}

		roster, err := j.employeeRepo.GetActiveByCompanyID(ctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to load roster for company %s: %w", companyID, err)
		}

		payload, err := j.attendanceRepo.GetWeek(ctx, weekStart, companyID)
		if err != nil {
			return fmt.Errorf("failed to load week for company %s: %w", companyID, err)
		}

		marked := 0
		for _, emp := range roster {
			records := payload[emp.ID]
			if _, exists := records[attendance.Sunday]; exists {
				continue
			}
			if !cleanWorkWeek(emp, records) {
				continue
			}

			_, err := j.attendanceRepo.Upsert(ctx, attendance.Attendance{
				EmployeeID:       emp.ID,
				CompanyID:        companyID,
				Date:             sunday,
				Day:              attendance.Sunday,
				Status:           attendance.StatusPresent,
				AutoMarkedReason: &reason,
				IsSundayBonus:    true,
			})
			if err != nil {
				return fmt.Errorf("failed to mark Sunday bonus: %w", err)
			}
			marked++
		}

		if marked > 0 {
			totalMarked += marked
			j.bus.Publish(events.Event{
				Type:      events.TypeAttendanceUpdated,
				CompanyID: companyID,
			})
		}
	}

	if totalMarked > 0 {
		slog.Info("Cron: Sunday bonus auto-marked", "date", sunday.Format("2006-01-02"), "count", totalMarked)
	}

	return nil
}

// cleanWorkWeek reports whether the employee has no absence Mon-Sat, counting
// configured off days as clean.
func cleanWorkWeek(emp employee.Employee, records attendance.WeekRecords) bool {
	for _, day := range attendance.WeekDays[:6] {
		if emp.OffDays[day] {
			continue
		}
		rec, ok := records[day]
		if !ok || rec.Status != attendance.StatusPresent {
			return false
		}
	}
	return true
}
