package compliance

import (
	"testing"

	"github.com/pickfloor/scheduler/internal/domain"
)

func TestEmployeeStatus_HoursAndDaysRemaining(t *testing.T) {
	reader := newFakeReader()
	reader.shiftsByEmployee[1] = []domain.Shift{
		{ID: 1, EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 16 * 60, BreakMinutes: 30},
		{ID: 2, EmployeeID: 1, Date: mon().AddDate(0, 0, 1), StartTime: 8 * 60, EndTime: 16 * 60, BreakMinutes: 30},
	}
	engine := NewEngine(reader, testConfig())

	status, err := engine.EmployeeStatus(1, mon())
	if err != nil {
		t.Fatalf("EmployeeStatus: %v", err)
	}
	if status.DaysWorked != 2 {
		t.Errorf("DaysWorked = %d, want 2", status.DaysWorked)
	}
	if status.TotalHours != 15 {
		t.Errorf("TotalHours = %v, want 15 (2 * 7.5h)", status.TotalHours)
	}
	if status.HoursRemaining != 29 {
		t.Errorf("HoursRemaining = %v, want 29 (44 - 15)", status.HoursRemaining)
	}
	if status.DaysRemaining != 4 {
		t.Errorf("DaysRemaining = %d, want 4 (6 - 2)", status.DaysRemaining)
	}
	if status.IsAtLimit {
		t.Error("should not be at limit yet")
	}
	if len(status.Shifts) != 2 {
		t.Fatalf("expected 2 shift summaries, got %d", len(status.Shifts))
	}
	if status.Shifts[0].Date.After(status.Shifts[1].Date) {
		t.Error("expected shift summaries sorted by date")
	}
}

func TestEmployeeStatus_AtLimitWhenHoursReachCap(t *testing.T) {
	reader := newFakeReader()
	reader.shiftsByEmployee[1] = []domain.Shift{
		{ID: 1, EmployeeID: 1, Date: mon(), StartTime: 0, EndTime: 44 * 60},
	}
	engine := NewEngine(reader, testConfig())

	status, err := engine.EmployeeStatus(1, mon())
	if err != nil {
		t.Fatalf("EmployeeStatus: %v", err)
	}
	if !status.IsAtLimit {
		t.Error("expected IsAtLimit once total hours reach the weekly cap")
	}
	if status.HoursRemaining != 0 {
		t.Errorf("HoursRemaining should floor at 0, got %v", status.HoursRemaining)
	}
}
