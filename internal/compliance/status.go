package compliance

import (
	"sort"
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
)

// ShiftSummary is one shift line within an EmployeeStatus report.
type ShiftSummary struct {
	Date  time.Time
	Start int
	End   int
	Hours float64
}

// EmployeeWeekStatus answers `employee_status(employee_id, monday)` (§6):
// an at-a-glance view of an employee's week against the labor caps.
type EmployeeWeekStatus struct {
	EmployeeID     int64
	TotalHours     float64
	HoursRemaining float64
	DaysWorked     int
	DaysRemaining  int
	IsAtLimit      bool
	Shifts         []ShiftSummary
}

// EmployeeStatus reports an employee's standing against weekly hour and
// day caps for the week starting monday.
func (e *Engine) EmployeeStatus(employeeID int64, monday time.Time) (EmployeeWeekStatus, error) {
	shifts, err := e.reader.ShiftsInWeek(employeeID, monday)
	if err != nil {
		return EmployeeWeekStatus{}, err
	}

	var total float64
	workDates := map[time.Time]bool{}
	summaries := make([]ShiftSummary, 0, len(shifts))
	for _, s := range shifts {
		total += s.WorkingHours()
		workDates[domain.CivilDate(s.Date)] = true
		summaries = append(summaries, ShiftSummary{Date: s.Date, Start: s.StartTime, End: s.EndTime, Hours: round2(s.WorkingHours())})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Date.Before(summaries[j].Date) })

	daysWorked := len(workDates)
	hoursRemaining := e.cfg.MaxHoursPerWeek - total
	if hoursRemaining < 0 {
		hoursRemaining = 0
	}
	daysRemaining := e.cfg.DaysOnPerWeek - daysWorked
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	return EmployeeWeekStatus{
		EmployeeID:     employeeID,
		TotalHours:     round2(total),
		HoursRemaining: round2(hoursRemaining),
		DaysWorked:     daysWorked,
		DaysRemaining:  daysRemaining,
		IsAtLimit:      total >= e.cfg.MaxHoursPerWeek || daysWorked >= e.cfg.DaysOnPerWeek,
		Shifts:         summaries,
	}, nil
}
