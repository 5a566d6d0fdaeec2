package domain

import "testing"
import "time"

func TestWeekStart(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday stays monday", date(2026, 7, 27), date(2026, 7, 27)},
		{"wednesday rolls back", date(2026, 7, 29), date(2026, 7, 27)},
		{"sunday rolls back to previous monday", date(2026, 8, 2), date(2026, 7, 27)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := WeekStart(c.in); !got.Equal(c.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestDayOfWeek(t *testing.T) {
	if got := DayOfWeek(date(2026, 7, 27)); got != 0 {
		t.Errorf("monday day index = %d, want 0", got)
	}
	if got := DayOfWeek(date(2026, 8, 2)); got != 6 {
		t.Errorf("sunday day index = %d, want 6", got)
	}
}

func TestIsMonday(t *testing.T) {
	if !IsMonday(date(2026, 7, 27)) {
		t.Error("expected 2026-07-27 to be a Monday")
	}
	if IsMonday(date(2026, 7, 28)) {
		t.Error("expected 2026-07-28 not to be a Monday")
	}
}

func TestShiftWorkingHours(t *testing.T) {
	s := Shift{StartTime: 8 * 60, EndTime: 16 * 60, BreakMinutes: 30}
	if got := s.ElapsedHours(); got != 8 {
		t.Errorf("ElapsedHours = %v, want 8", got)
	}
	if got := s.WorkingHours(); got != 7.5 {
		t.Errorf("WorkingHours = %v, want 7.5", got)
	}
}

func TestShiftOverlaps(t *testing.T) {
	a := Shift{Date: date(2026, 7, 27), StartTime: 8 * 60, EndTime: 12 * 60}
	overlapping := Shift{Date: date(2026, 7, 27), StartTime: 10 * 60, EndTime: 14 * 60}
	adjacent := Shift{Date: date(2026, 7, 27), StartTime: 12 * 60, EndTime: 16 * 60}
	otherDay := Shift{Date: date(2026, 7, 28), StartTime: 8 * 60, EndTime: 12 * 60}

	if !a.Overlaps(overlapping) {
		t.Error("expected overlap")
	}
	if a.Overlaps(adjacent) {
		t.Error("adjacent [8-12) and [12-16) should not overlap")
	}
	if a.Overlaps(otherDay) {
		t.Error("different dates should never overlap")
	}
}

func TestTimeOffRequestCovers(t *testing.T) {
	req := TimeOffRequest{Status: TimeOffApproved, StartDate: date(2026, 7, 27), EndDate: date(2026, 7, 29)}
	if !req.Covers(date(2026, 7, 28)) {
		t.Error("expected date within range to be covered")
	}
	if req.Covers(date(2026, 7, 30)) {
		t.Error("date after range should not be covered")
	}

	pending := req
	pending.Status = TimeOffPending
	if pending.Covers(date(2026, 7, 28)) {
		t.Error("a non-approved request should never cover a date")
	}
}

func TestAvailabilityFitsWindow(t *testing.T) {
	noPreference := Availability{IsAvailable: true}
	if !noPreference.FitsWindow(6, 22) {
		t.Error("no preferred window should fit anything")
	}

	start, end := 9, 17
	withPreference := Availability{IsAvailable: true, PreferredStart: &start, PreferredEnd: &end}
	if !withPreference.FitsWindow(9, 17) {
		t.Error("exact match to preferred window should fit")
	}
	if withPreference.FitsWindow(8, 17) {
		t.Error("shift starting before preferred window should not fit")
	}
}

func TestDefaultAvailability(t *testing.T) {
	a := DefaultAvailability(42, 3)
	if !a.IsAvailable || a.PreferredStart != nil || a.PreferredEnd != nil {
		t.Errorf("DefaultAvailability should be available with no preferred window, got %+v", a)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
