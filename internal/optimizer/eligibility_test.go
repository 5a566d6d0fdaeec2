package optimizer

import (
	"testing"
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
)

func mon() time.Time { return time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC) }

func noAvailability(dow int) domain.Availability { return domain.DefaultAvailability(1, dow) }

func TestBuildEmployeeContext_ComputesRemainingBudgetFromExistingShifts(t *testing.T) {
	existing := []domain.Shift{
		{EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 16 * 60, BreakMinutes: 30}, // 7.5h
	}
	ctx := BuildEmployeeContext(domain.Employee{ID: 1}, mon(), existing, noAvailability, nil, 44, 6)

	if ctx.MaxHoursRemaining != 36.5 {
		t.Errorf("MaxHoursRemaining = %v, want 36.5 (44 - 7.5)", ctx.MaxHoursRemaining)
	}
	if ctx.MaxDaysRemaining != 5 {
		t.Errorf("MaxDaysRemaining = %d, want 5 (6 - 1)", ctx.MaxDaysRemaining)
	}
	if !ctx.ExistingWorkDates[domain.CivilDate(mon())] {
		t.Error("expected Monday to be marked as an existing work date")
	}
}

func TestBuildEmployeeContext_RemainingBudgetFloorsAtZero(t *testing.T) {
	existing := []domain.Shift{
		{EmployeeID: 1, Date: mon(), StartTime: 0, EndTime: 50 * 60},
	}
	ctx := BuildEmployeeContext(domain.Employee{ID: 1}, mon(), existing, noAvailability, nil, 44, 6)
	if ctx.MaxHoursRemaining != 0 {
		t.Errorf("MaxHoursRemaining should floor at 0, got %v", ctx.MaxHoursRemaining)
	}
}

func TestBuildEmployeeContext_TimeOffMakesDayUnavailable(t *testing.T) {
	timeOff := []domain.TimeOffRequest{
		{EmployeeID: 1, Status: domain.TimeOffApproved, StartDate: mon(), EndDate: mon()},
	}
	ctx := BuildEmployeeContext(domain.Employee{ID: 1}, mon(), nil, noAvailability, timeOff, 44, 6)
	if ctx.AvailableDays[0] {
		t.Error("expected day 0 (Monday) to be unavailable due to approved time off")
	}
	if !ctx.AvailableDays[1] {
		t.Error("expected day 1 (Tuesday) to remain available")
	}
}

func TestEligible_RejectsUnavailableDay(t *testing.T) {
	ctx := BuildEmployeeContext(domain.Employee{ID: 1}, mon(), nil, func(dow int) domain.Availability {
		return domain.Availability{IsAvailable: dow != 0}
	}, nil, 44, 6)
	if ctx.Eligible(0, Templates[0], 8, 22) {
		t.Error("expected day 0 to be ineligible when marked unavailable")
	}
	if !ctx.Eligible(1, Templates[0], 8, 22) {
		t.Error("expected day 1 to be eligible")
	}
}

func TestEligible_RejectsOutsideOperatingHours(t *testing.T) {
	ctx := BuildEmployeeContext(domain.Employee{ID: 1}, mon(), nil, noAvailability, nil, 44, 6)
	tmpl := Templates[5] // 14:00-22:00
	if ctx.Eligible(0, tmpl, 8, 20) {
		t.Error("expected template ending after operating close to be ineligible")
	}
}

func TestEligible_RejectsPreferredWindowMiss(t *testing.T) {
	start, end := 8, 12
	ctx := BuildEmployeeContext(domain.Employee{ID: 1}, mon(), nil, func(dow int) domain.Availability {
		return domain.Availability{IsAvailable: true, PreferredStart: &start, PreferredEnd: &end}
	}, nil, 44, 6)
	if ctx.Eligible(0, Templates[0], 8, 22) { // 08:00-16:00, outside 08:00-12:00 preference
		t.Error("expected a template exceeding the preferred window to be ineligible")
	}
}

func TestEligible_RejectsWhenHoursBudgetExhausted(t *testing.T) {
	existing := []domain.Shift{
		{EmployeeID: 1, Date: mon(), StartTime: 0, EndTime: 44 * 60},
	}
	ctx := BuildEmployeeContext(domain.Employee{ID: 1}, mon(), existing, noAvailability, nil, 44, 6)
	if ctx.Eligible(1, Templates[0], 8, 22) {
		t.Error("expected ineligibility once the weekly hours budget is exhausted")
	}
}
