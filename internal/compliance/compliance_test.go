package compliance

import (
	"testing"
	"time"

	"github.com/pickfloor/scheduler/internal/config"
	"github.com/pickfloor/scheduler/internal/domain"
)

// fakeReader is a hand-rolled domain.ComplianceReader stand-in: no SQLite,
// no mocking library, just maps — matching the teacher's own fake-not-mock
// test doubles.
type fakeReader struct {
	shiftsByEmployee map[int64][]domain.Shift
	timeOff          map[int64]*domain.TimeOffRequest
	availability     map[[2]int64]domain.Availability
	names            map[int64]string
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		shiftsByEmployee: map[int64][]domain.Shift{},
		timeOff:          map[int64]*domain.TimeOffRequest{},
		availability:     map[[2]int64]domain.Availability{},
		names:            map[int64]string{},
	}
}

func (f *fakeReader) ShiftsInWeek(employeeID int64, weekStart time.Time) ([]domain.Shift, error) {
	return f.shiftsByEmployee[employeeID], nil
}

func (f *fakeReader) TimeOffForDate(employeeID int64, date time.Time) (*domain.TimeOffRequest, error) {
	return f.timeOff[employeeID], nil
}

func (f *fakeReader) AvailabilityFor(employeeID int64, dayOfWeek int) (domain.Availability, error) {
	if a, ok := f.availability[[2]int64{employeeID, int64(dayOfWeek)}]; ok {
		return a, nil
	}
	return domain.DefaultAvailability(employeeID, dayOfWeek), nil
}

func (f *fakeReader) EmployeeName(employeeID int64) string {
	return f.names[employeeID]
}

func testConfig() config.LaborConfig {
	return config.LaborConfig{
		MaxHoursPerWeek:        44,
		MaxHoursPerDay:         8,
		DaysOnPerWeek:          6,
		BreakMinutes8HrShift:   30,
		BreakMinutes9HrShift:   60,
		WeeklyWarningThreshold: 40,
	}
}

func mon() time.Time { return time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC) }

func TestValidateShift_DailyHoursExceeded(t *testing.T) {
	reader := newFakeReader()
	engine := NewEngine(reader, testConfig())

	shift := domain.ProposedShift{EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 18 * 60, BreakMinutes: 60}
	result, err := engine.ValidateShift(shift)
	if err != nil {
		t.Fatalf("ValidateShift: %v", err)
	}
	if result.IsCompliant {
		t.Fatal("expected a daily-hours violation")
	}
	if len(result.Violations) != 1 || result.Violations[0].Code != DailyHoursExceeded {
		t.Fatalf("expected exactly one DailyHoursExceeded violation, got %+v", result.Violations)
	}
	excess, _ := result.Violations[0].Details["excess_hours"].(float64)
	if excess <= 0 {
		t.Errorf("expected positive excess_hours, got %v", excess)
	}
}

func TestValidateShift_InsufficientBreak(t *testing.T) {
	reader := newFakeReader()
	engine := NewEngine(reader, testConfig())

	shift := domain.ProposedShift{EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 16 * 60, BreakMinutes: 10}
	result, err := engine.ValidateShift(shift)
	if err != nil {
		t.Fatalf("ValidateShift: %v", err)
	}
	found := false
	for _, v := range result.Violations {
		if v.Code == InsufficientBreak {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected InsufficientBreak violation, got %+v", result.Violations)
	}
}

func TestValidateShift_TimeOffConflict(t *testing.T) {
	reader := newFakeReader()
	reader.timeOff[1] = &domain.TimeOffRequest{ID: 9, EmployeeID: 1, Status: domain.TimeOffApproved, StartDate: mon(), EndDate: mon().AddDate(0, 0, 2)}
	engine := NewEngine(reader, testConfig())

	shift := domain.ProposedShift{EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 16 * 60, BreakMinutes: 30}
	result, err := engine.ValidateShift(shift)
	if err != nil {
		t.Fatalf("ValidateShift: %v", err)
	}
	if result.IsCompliant {
		t.Fatal("expected time-off conflict to make the shift non-compliant")
	}
}

func TestValidateShift_AvailabilityConflictIsWarningNotViolation(t *testing.T) {
	reader := newFakeReader()
	reader.availability[[2]int64{1, 0}] = domain.Availability{EmployeeID: 1, DayOfWeek: 0, IsAvailable: false}
	engine := NewEngine(reader, testConfig())

	shift := domain.ProposedShift{EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 16 * 60, BreakMinutes: 30}
	result, err := engine.ValidateShift(shift)
	if err != nil {
		t.Fatalf("ValidateShift: %v", err)
	}
	if !result.IsCompliant {
		t.Fatalf("an availability conflict alone should be a warning, not a violation: %+v", result.Violations)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != AvailabilityConflict {
		t.Fatalf("expected one AvailabilityConflict warning, got %+v", result.Warnings)
	}
}

func TestValidateShift_Overlap(t *testing.T) {
	reader := newFakeReader()
	reader.shiftsByEmployee[1] = []domain.Shift{
		{ID: 100, EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 16 * 60},
	}
	engine := NewEngine(reader, testConfig())

	overlapping := domain.ProposedShift{EmployeeID: 1, Date: mon(), StartTime: 14 * 60, EndTime: 18 * 60, BreakMinutes: 30}
	result, err := engine.ValidateShift(overlapping)
	if err != nil {
		t.Fatalf("ValidateShift: %v", err)
	}
	if result.IsCompliant {
		t.Fatal("expected ShiftOverlap violation")
	}
}

func TestValidateShift_ExcludeShiftIDSkipsItsOwnRow(t *testing.T) {
	reader := newFakeReader()
	existing := domain.Shift{ID: 100, EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 16 * 60}
	reader.shiftsByEmployee[1] = []domain.Shift{existing}
	engine := NewEngine(reader, testConfig())

	excludeID := existing.ID
	same := domain.ProposedShift{EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 16 * 60, BreakMinutes: 30, ExcludeShiftID: &excludeID}
	result, err := engine.ValidateShift(same)
	if err != nil {
		t.Fatalf("ValidateShift: %v", err)
	}
	for _, v := range result.Violations {
		if v.Code == ShiftOverlap {
			t.Fatalf("excluded shift id should not overlap with itself: %+v", result.Violations)
		}
	}
}

func TestValidateSchedule_DeduplicatesByCodeEmployeeDate(t *testing.T) {
	reader := newFakeReader()
	engine := NewEngine(reader, testConfig())

	// Two shifts on the same day for the same employee both exceed the
	// daily cap individually once combined; validateDailyHours is invoked
	// once per shift in the schedule, so without dedup this would produce
	// two identical findings for the same (code, employee, date).
	shifts := []domain.Shift{
		{ID: 1, EmployeeID: 1, Date: mon(), StartTime: 0, EndTime: 6 * 60},
		{ID: 2, EmployeeID: 1, Date: mon(), StartTime: 6 * 60, EndTime: 12 * 60},
	}
	reader.shiftsByEmployee[1] = shifts

	result, err := engine.ValidateSchedule(shifts)
	if err != nil {
		t.Fatalf("ValidateSchedule: %v", err)
	}
	count := 0
	for _, v := range result.Violations {
		if v.Code == DailyHoursExceeded {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one deduplicated DailyHoursExceeded finding, got %d", count)
	}
}

func TestValidateSchedule_CatchesOverlapAcrossShifts(t *testing.T) {
	reader := newFakeReader()
	engine := NewEngine(reader, testConfig())

	// Two overlapping shifts for the same employee on the same date, both
	// already persisted in the schedule being validated.
	shifts := []domain.Shift{
		{ID: 1, EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 16 * 60},
		{ID: 2, EmployeeID: 1, Date: mon(), StartTime: 14 * 60, EndTime: 18 * 60},
	}
	reader.shiftsByEmployee[1] = shifts

	result, err := engine.ValidateSchedule(shifts)
	if err != nil {
		t.Fatalf("ValidateSchedule: %v", err)
	}
	if result.IsCompliant {
		t.Fatal("expected overlapping shifts to make the schedule non-compliant")
	}
	found := false
	for _, v := range result.Violations {
		if v.Code == ShiftOverlap {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ShiftOverlap violation, got %+v", result.Violations)
	}
}

func TestValidateWeeklyHours_WarningBelowCapAboveThreshold(t *testing.T) {
	reader := newFakeReader()
	reader.shiftsByEmployee[1] = []domain.Shift{
		{ID: 1, EmployeeID: 1, Date: mon(), StartTime: 0, EndTime: 41 * 60},
	}
	engine := NewEngine(reader, testConfig())

	result, err := engine.validateWeeklyHours(1, mon(), nil)
	if err != nil {
		t.Fatalf("validateWeeklyHours: %v", err)
	}
	if len(result) != 1 || result[0].Severity != SeverityWarning {
		t.Fatalf("expected one weekly-hours warning (41h is above the 40h threshold but below the 44h cap), got %+v", result)
	}
}
