package reconciliation

import (
	"testing"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/attendance"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/employee"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/reconciliation"
	"github.com/staffdeck/staffdeck-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWeekStart = "2026-08-24" // a Monday

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func testEmployee(offDays map[attendance.DayCode]bool) employee.Employee {
	return employee.Employee{
		ID:                 "emp-1",
		FullName:           "Jane Doe",
		OffDays:            offDays,
		WeeklyRulesEnabled: true,
	}
}

func recordsWith(statuses map[attendance.DayCode]attendance.DayStatus) attendance.WeekRecords {
	records := make(attendance.WeekRecords)
	for day, status := range statuses {
		records[day] = attendance.DayRecord{Status: status}
	}
	return records
}

func TestBuildWeekView_PenaltyAbsentOnFirstOffDay(t *testing.T) {
	// threshold=3, absent Mon-Thu, off day Wed: Wed is the penalty day.
	emp := testEmployee(map[attendance.DayCode]bool{attendance.Wednesday: true})
	records := recordsWith(map[attendance.DayCode]attendance.DayStatus{
		attendance.Monday:    attendance.StatusAbsent,
		attendance.Tuesday:   attendance.StatusAbsent,
		attendance.Wednesday: attendance.StatusAbsent,
		attendance.Thursday:  attendance.StatusAbsent,
	})

	view := BuildWeekView(emp, testWeekStart, records, intPtr(3), nil)

	assert.Equal(t, 4, view.AbsentCount)
	assert.True(t, view.Penalty)
	require.NotNil(t, view.FirstOffDay)
	assert.Equal(t, attendance.Wednesday, *view.FirstOffDay)

	wed := view.Days[attendance.Wednesday.Offset()]
	assert.Equal(t, reconciliation.ChipPenaltyAbsent, wed.Category)
	assert.True(t, wed.Overridable)

	// The other absences stay plain.
	assert.Equal(t, reconciliation.ChipAbsent, view.Days[attendance.Monday.Offset()].Category)
	assert.Equal(t, reconciliation.ChipAbsent, view.Days[attendance.Thursday.Offset()].Category)
}

func TestBuildWeekView_PenaltyPresentWhenWorkedOnOffDay(t *testing.T) {
	emp := testEmployee(map[attendance.DayCode]bool{attendance.Wednesday: true})
	records := recordsWith(map[attendance.DayCode]attendance.DayStatus{
		attendance.Monday:    attendance.StatusAbsent,
		attendance.Tuesday:   attendance.StatusAbsent,
		attendance.Wednesday: attendance.StatusPresent,
		attendance.Thursday:  attendance.StatusAbsent,
	})

	view := BuildWeekView(emp, testWeekStart, records, intPtr(3), nil)

	assert.True(t, view.Penalty)
	wed := view.Days[attendance.Wednesday.Offset()]
	assert.Equal(t, reconciliation.ChipPenaltyPresent, wed.Category)
	assert.False(t, wed.Overridable)
}

func TestBuildWeekView_NilThresholdSkipsPenalty(t *testing.T) {
	emp := testEmployee(map[attendance.DayCode]bool{attendance.Wednesday: true})
	records := recordsWith(map[attendance.DayCode]attendance.DayStatus{
		attendance.Monday:    attendance.StatusAbsent,
		attendance.Tuesday:   attendance.StatusAbsent,
		attendance.Wednesday: attendance.StatusAbsent,
		attendance.Thursday:  attendance.StatusAbsent,
	})

	view := BuildWeekView(emp, testWeekStart, records, nil, nil)

	assert.False(t, view.Penalty)
	for _, chip := range view.Days {
		assert.False(t, chip.Category.IsPenalty(), "day %s should render plain with no threshold", chip.Day)
	}
	assert.Equal(t, reconciliation.ChipAbsent, view.Days[attendance.Wednesday.Offset()].Category)
}

func TestBuildWeekView_NoPenaltyChipsBelowThreshold(t *testing.T) {
	emp := testEmployee(map[attendance.DayCode]bool{attendance.Friday: true})
	records := recordsWith(map[attendance.DayCode]attendance.DayStatus{
		attendance.Monday: attendance.StatusAbsent,
		attendance.Friday: attendance.StatusAbsent,
	})

	view := BuildWeekView(emp, testWeekStart, records, intPtr(3), nil)

	assert.False(t, view.Penalty)
	for _, chip := range view.Days {
		assert.False(t, chip.Category.IsPenalty())
	}
}

func TestBuildWeekView_SundayNeverCounted(t *testing.T) {
	emp := testEmployee(map[attendance.DayCode]bool{attendance.Saturday: true})
	records := recordsWith(map[attendance.DayCode]attendance.DayStatus{
		attendance.Monday:  attendance.StatusAbsent,
		attendance.Tuesday: attendance.StatusAbsent,
		attendance.Sunday:  attendance.StatusAbsent,
	})

	view := BuildWeekView(emp, testWeekStart, records, intPtr(3), nil)

	// Sunday's absence renders but is not counted, so the threshold of 3 is
	// not reached.
	assert.Equal(t, 2, view.AbsentCount)
	assert.False(t, view.Penalty)
	assert.Equal(t, reconciliation.ChipAbsent, view.Days[attendance.Sunday.Offset()].Category)
}

func TestBuildWeekView_MissingOffDaysSkipsEmployee(t *testing.T) {
	emp := testEmployee(nil)
	records := recordsWith(map[attendance.DayCode]attendance.DayStatus{
		attendance.Monday:    attendance.StatusAbsent,
		attendance.Tuesday:   attendance.StatusAbsent,
		attendance.Wednesday: attendance.StatusAbsent,
	})

	view := BuildWeekView(emp, testWeekStart, records, intPtr(3), nil)

	assert.Nil(t, view.FirstOffDay)
	assert.False(t, view.Penalty)
	for _, chip := range view.Days {
		assert.False(t, chip.Category.IsPenalty())
	}
}

func TestBuildWeekView_WeeklyRulesDisabledSkipsPenalty(t *testing.T) {
	emp := testEmployee(map[attendance.DayCode]bool{attendance.Wednesday: true})
	emp.WeeklyRulesEnabled = false
	records := recordsWith(map[attendance.DayCode]attendance.DayStatus{
		attendance.Monday:    attendance.StatusAbsent,
		attendance.Tuesday:   attendance.StatusAbsent,
		attendance.Wednesday: attendance.StatusAbsent,
	})

	view := BuildWeekView(emp, testWeekStart, records, intPtr(3), nil)

	assert.False(t, view.Penalty)
	assert.Equal(t, reconciliation.ChipAbsent, view.Days[attendance.Wednesday.Offset()].Category)
}

func TestBuildWeekView_UnmarkedAndOffChips(t *testing.T) {
	emp := testEmployee(map[attendance.DayCode]bool{attendance.Sunday: true})
	records := recordsWith(map[attendance.DayCode]attendance.DayStatus{
		attendance.Monday: attendance.StatusPresent,
		attendance.Sunday: attendance.StatusOff,
	})

	view := BuildWeekView(emp, testWeekStart, records, intPtr(2), nil)

	assert.Equal(t, reconciliation.ChipPresent, view.Days[attendance.Monday.Offset()].Category)
	assert.Equal(t, reconciliation.ChipOffDay, view.Days[attendance.Sunday.Offset()].Category)
	for _, day := range []attendance.DayCode{attendance.Tuesday, attendance.Wednesday, attendance.Thursday, attendance.Friday, attendance.Saturday} {
		chip := view.Days[day.Offset()]
		assert.Equal(t, reconciliation.ChipUnmarked, chip.Category)
		assert.Equal(t, attendance.StatusUnmarked, chip.Status)
	}
}

func TestBuildWeekView_AutoPresentTooltip(t *testing.T) {
	emp := testEmployee(map[attendance.DayCode]bool{attendance.Saturday: true})
	records := attendance.WeekRecords{
		attendance.Sunday: {
			Status:           attendance.StatusPresent,
			AutoMarkedReason: strPtr(attendance.SundayBonusReason),
			IsSundayBonus:    true,
		},
	}

	view := BuildWeekView(emp, testWeekStart, records, intPtr(2), nil)

	sun := view.Days[attendance.Sunday.Offset()]
	assert.Equal(t, reconciliation.ChipAutoPresent, sun.Category)
	require.NotNil(t, sun.Tooltip)
	assert.Equal(t, attendance.SundayBonusReason, *sun.Tooltip)
}

func TestBuildWeekView_AutoPresentWinsOverPenaltyPresent(t *testing.T) {
	emp := testEmployee(map[attendance.DayCode]bool{attendance.Wednesday: true})
	records := attendance.WeekRecords{
		attendance.Monday:  {Status: attendance.StatusAbsent},
		attendance.Tuesday: {Status: attendance.StatusAbsent},
		attendance.Wednesday: {
			Status:           attendance.StatusPresent,
			AutoMarkedReason: strPtr("Make-up shift"),
		},
		attendance.Thursday: {Status: attendance.StatusAbsent},
	}

	view := BuildWeekView(emp, testWeekStart, records, intPtr(3), nil)

	assert.True(t, view.Penalty)
	assert.Equal(t, reconciliation.ChipAutoPresent, view.Days[attendance.Wednesday.Offset()].Category)
}

func TestBuildWeekView_OverrideTogglesCategoryOnly(t *testing.T) {
	emp := testEmployee(map[attendance.DayCode]bool{attendance.Wednesday: true})
	records := recordsWith(map[attendance.DayCode]attendance.DayStatus{
		attendance.Monday:    attendance.StatusAbsent,
		attendance.Tuesday:   attendance.StatusAbsent,
		attendance.Wednesday: attendance.StatusAbsent,
	})

	store := memory.NewOverrideStore()
	key := reconciliation.OverrideKey{
		SessionID:  "sess-1",
		EmployeeID: emp.ID,
		WeekStart:  testWeekStart,
		Day:        attendance.Wednesday,
	}
	isIgnored := func(day attendance.DayCode) bool {
		k := key
		k.Day = day
		return store.IsIgnored(k)
	}

	before := BuildWeekView(emp, testWeekStart, records, intPtr(3), isIgnored)
	assert.Equal(t, reconciliation.ChipPenaltyAbsent, before.Days[attendance.Wednesday.Offset()].Category)

	store.Toggle(key)
	reverted := BuildWeekView(emp, testWeekStart, records, intPtr(3), isIgnored)
	wed := reverted.Days[attendance.Wednesday.Offset()]
	assert.Equal(t, reconciliation.ChipPenaltyReverted, wed.Category)
	// The stored status is untouched; only the render category moves.
	assert.Equal(t, attendance.StatusAbsent, wed.Status)

	// Toggling twice restores the original display.
	store.Toggle(key)
	after := BuildWeekView(emp, testWeekStart, records, intPtr(3), isIgnored)
	assert.Equal(t, before, after)
}

func TestBuildWeekView_Deterministic(t *testing.T) {
	emp := testEmployee(map[attendance.DayCode]bool{attendance.Tuesday: true, attendance.Friday: true})
	records := recordsWith(map[attendance.DayCode]attendance.DayStatus{
		attendance.Monday:   attendance.StatusAbsent,
		attendance.Tuesday:  attendance.StatusAbsent,
		attendance.Thursday: attendance.StatusPresent,
		attendance.Friday:   attendance.StatusAbsent,
		attendance.Saturday: attendance.StatusAbsent,
	})

	first := BuildWeekView(emp, testWeekStart, records, intPtr(4), nil)
	second := BuildWeekView(emp, testWeekStart, records, intPtr(4), nil)

	assert.Equal(t, first, second)
	// Earliest configured off day wins.
	require.NotNil(t, first.FirstOffDay)
	assert.Equal(t, attendance.Tuesday, *first.FirstOffDay)
}

func TestBuildWeekView_UnknownStoredStatusDerivesUnmarked(t *testing.T) {
	emp := testEmployee(map[attendance.DayCode]bool{attendance.Sunday: true})
	records := recordsWith(map[attendance.DayCode]attendance.DayStatus{
		attendance.Monday:  attendance.DayStatus("holiday"),
		attendance.Tuesday: attendance.StatusPresent,
	})

	view := BuildWeekView(emp, testWeekStart, records, intPtr(3), nil)

	mon := view.Days[attendance.Monday.Offset()]
	assert.Equal(t, attendance.StatusUnmarked, mon.Status)
	assert.Equal(t, reconciliation.ChipUnmarked, mon.Category)

	// Malformed rows never count toward the absence total either.
	assert.Equal(t, 0, view.AbsentCount)
}
