package optimizer

import (
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
)

// EmployeeContext is the per-employee data the eligibility pruner needs:
// availability, preference windows, and remaining weekly budget computed
// from already-persisted shifts in the target week (§4.4 step 4).
type EmployeeContext struct {
	Employee          domain.Employee
	AvailableDays     map[int]bool            // day-of-week -> available (availability AND no time-off)
	PreferredWindow   map[int]domain.Availability
	MaxHoursRemaining float64
	MaxDaysRemaining  int
	ExistingWorkDates map[time.Time]bool // already-scheduled dates this week
}

// BuildEmployeeContext derives an EmployeeContext for one employee and week,
// given their persisted shifts, availability rows, and approved time off.
func BuildEmployeeContext(
	employee domain.Employee,
	weekStart time.Time,
	existingShifts []domain.Shift,
	availability func(dayOfWeek int) domain.Availability,
	approvedTimeOff []domain.TimeOffRequest,
	maxHoursPerWeek float64,
	maxDaysPerWeek int,
) EmployeeContext {
	ctx := EmployeeContext{
		Employee:          employee,
		AvailableDays:     make(map[int]bool, 7),
		PreferredWindow:   make(map[int]domain.Availability, 7),
		ExistingWorkDates: make(map[time.Time]bool),
	}

	var existingHours float64
	for _, s := range existingShifts {
		existingHours += s.WorkingHours()
		ctx.ExistingWorkDates[domain.CivilDate(s.Date)] = true
	}
	ctx.MaxHoursRemaining = maxHoursPerWeek - existingHours
	if ctx.MaxHoursRemaining < 0 {
		ctx.MaxHoursRemaining = 0
	}
	ctx.MaxDaysRemaining = maxDaysPerWeek - len(ctx.ExistingWorkDates)
	if ctx.MaxDaysRemaining < 0 {
		ctx.MaxDaysRemaining = 0
	}

	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day)
		avail := availability(day)
		ctx.PreferredWindow[day] = avail

		available := avail.IsAvailable
		for _, t := range approvedTimeOff {
			if t.Covers(date) {
				available = false
			}
		}
		ctx.AvailableDays[day] = available
	}

	return ctx
}

// Eligible reports whether (employee, day, template) survives the four
// eligibility checks of §4.4.
func (ctx EmployeeContext) Eligible(day int, tmpl Template, operatingStart, operatingEnd int) bool {
	if !ctx.AvailableDays[day] {
		return false
	}
	if tmpl.StartHour < operatingStart || tmpl.EndHour > operatingEnd {
		return false
	}
	if avail, ok := ctx.PreferredWindow[day]; ok && !avail.FitsWindow(tmpl.StartHour, tmpl.EndHour) {
		return false
	}
	if tmpl.WorkingHours() > ctx.MaxHoursRemaining {
		return false
	}
	return true
}
