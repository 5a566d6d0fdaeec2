package lifecycle

import (
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
	"github.com/pickfloor/scheduler/internal/infra/observability"
)

// CallOutResponse reports the outcome of marking a shift called-out.
type CallOutResponse struct {
	Shift domain.Shift
}

// MarkCallout marks a scheduled shift called_out, capturing the reason,
// the call-out time, and the original employee so week-hours accounting
// still reflects them until a replacement is assigned (§4.5, §9 design
// note "call-out accounting ambiguity"). Not idempotent: rejected if the
// shift is not currently scheduled.
func (m *Manager) MarkCallout(shiftID int64, reason string) (CallOutResponse, error) {
	shift, err := m.schedules.GetShift(shiftID)
	if err != nil {
		return CallOutResponse{}, err
	}
	if shift == nil {
		return CallOutResponse{}, domain.NewError(domain.KindNotFound, "shift not found", domain.ErrShiftNotFound)
	}
	if shift.Status != domain.ShiftScheduled {
		return CallOutResponse{}, domain.NewError(domain.KindPreconditionViolated, "only a scheduled shift may be called out", domain.ErrShiftNotScheduled)
	}

	now := time.Now()
	original := shift.EmployeeID
	shift.Status = domain.ShiftCalledOut
	shift.CalloutReason = reason
	shift.CalloutTime = &now
	shift.OriginalEmployeeID = &original

	if err := m.schedules.UpdateShift(*shift); err != nil {
		return CallOutResponse{}, err
	}

	observability.CalloutsRecorded.Inc()
	if m.notifier != nil {
		m.notifier.Notify(original, "your shift has been marked as a call-out and is open for replacement")
	}
	return CallOutResponse{Shift: *shift}, nil
}

// ReplacementCandidate is one enumerated candidate for a call-out shift,
// annotated with every conflict the manager should surface to a human
// reviewer (§4.5 "Replacement search").
type ReplacementCandidate struct {
	EmployeeID           int64
	EmployeeName         string
	Available            bool // availability-day flag true AND no conflicts
	ExistingShiftConflict bool
	TimeOffConflict       bool
	AvailabilityConflict  bool
	PreferredWindowMiss   bool // warning only, never excludes
	ProjectedWeeklyHours  float64
	RemainingWeeklyHours  float64
	OverHoursCap          bool
}

// FindReplacements enumerates active employees in the call-out shift's
// store, excluding the original employee, annotated with conflicts. The
// result is sorted available-first, then by descending remaining weekly
// hours; ineligible candidates are still returned for manager override.
func (m *Manager) FindReplacements(shiftID int64) ([]ReplacementCandidate, error) {
	shift, err := m.schedules.GetShift(shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, domain.NewError(domain.KindNotFound, "shift not found", domain.ErrShiftNotFound)
	}
	if shift.Status != domain.ShiftCalledOut {
		return nil, domain.NewError(domain.KindPreconditionViolated, "shift is not called_out", domain.ErrShiftNotCalledOut)
	}

	schedule, err := m.schedules.GetSchedule(shift.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, domain.NewError(domain.KindNotFound, "schedule not found", domain.ErrScheduleNotFound)
	}

	employees, err := m.employees.ListActiveEmployees(schedule.StoreID)
	if err != nil {
		return nil, err
	}

	var originalID int64
	if shift.OriginalEmployeeID != nil {
		originalID = *shift.OriginalEmployeeID
	} else {
		originalID = shift.EmployeeID
	}

	weekStart := domain.WeekStart(shift.Date)
	dow := domain.DayOfWeek(shift.Date)

	var candidates []ReplacementCandidate
	for _, emp := range employees {
		if emp.ID == originalID || !emp.IsSchedulable() {
			continue
		}

		existing, err := m.reader.ShiftsInWeek(emp.ID, weekStart)
		if err != nil {
			return nil, err
		}

		existingConflict := false
		var existingHours float64
		for _, s := range existing {
			existingHours += s.WorkingHours()
			if domain.CivilDate(s.Date).Equal(domain.CivilDate(shift.Date)) &&
				(s.Status == domain.ShiftScheduled || s.Status == domain.ShiftCovered) &&
				shift.Overlaps(s) {
				existingConflict = true
			}
		}

		timeOff, err := m.timeOff.TimeOffForDate(emp.ID, shift.Date)
		if err != nil {
			return nil, err
		}
		timeOffConflict := timeOff != nil

		avail, err := m.employees.AvailabilityFor(emp.ID, dow)
		if err != nil {
			return nil, err
		}
		availabilityConflict := !avail.IsAvailable
		preferredMiss := avail.IsAvailable && !avail.FitsWindow(shift.StartTime/60, shift.EndTime/60)

		projected := existingHours + shift.WorkingHours()
		overCap := projected > m.cfg.MaxHoursPerWeek

		available := !existingConflict && !timeOffConflict && !availabilityConflict

		candidates = append(candidates, ReplacementCandidate{
			EmployeeID: emp.ID, EmployeeName: emp.Name,
			Available:             available,
			ExistingShiftConflict: existingConflict,
			TimeOffConflict:       timeOffConflict,
			AvailabilityConflict:  availabilityConflict,
			PreferredWindowMiss:   preferredMiss,
			ProjectedWeeklyHours:  round2(projected),
			RemainingWeeklyHours:  round2(m.cfg.MaxHoursPerWeek - existingHours),
			OverHoursCap:          overCap,
		})
	}

	sortByAvailableThenHours(candidates)
	return candidates, nil
}

// AssignReplacementResponse reports the outcome of assigning a replacement.
type AssignReplacementResponse struct {
	Shift domain.Shift
}

// AssignReplacement requires the shift to be called_out and the target
// employee to be active in the same store. Unless force is set, a
// projected weekly total over the configured cap rejects with a conflict
// error. On success the shift becomes covered, employee_id and
// covered_by_id both point at the replacement, and original_employee_id
// is preserved for accounting (§4.5).
func (m *Manager) AssignReplacement(shiftID, employeeID int64, force bool) (AssignReplacementResponse, error) {
	shift, err := m.schedules.GetShift(shiftID)
	if err != nil {
		return AssignReplacementResponse{}, err
	}
	if shift == nil {
		return AssignReplacementResponse{}, domain.NewError(domain.KindNotFound, "shift not found", domain.ErrShiftNotFound)
	}
	if shift.Status != domain.ShiftCalledOut {
		return AssignReplacementResponse{}, domain.NewError(domain.KindPreconditionViolated, "shift is not called_out", domain.ErrShiftNotCalledOut)
	}

	replacement, err := m.employees.GetEmployee(employeeID)
	if err != nil {
		return AssignReplacementResponse{}, err
	}
	if replacement == nil || !replacement.IsSchedulable() {
		return AssignReplacementResponse{}, domain.NewError(domain.KindPreconditionViolated, "replacement employee must be active", domain.ErrEmployeeNotFound)
	}

	schedule, err := m.schedules.GetSchedule(shift.ScheduleID)
	if err != nil {
		return AssignReplacementResponse{}, err
	}
	if schedule == nil || replacement.StoreID != schedule.StoreID {
		return AssignReplacementResponse{}, domain.NewError(domain.KindPreconditionViolated, "replacement must belong to the same store", domain.ErrEmployeeNotFound)
	}

	weekStart := domain.WeekStart(shift.Date)
	existing, err := m.reader.ShiftsInWeek(employeeID, weekStart)
	if err != nil {
		return AssignReplacementResponse{}, err
	}
	var existingHours float64
	for _, s := range existing {
		existingHours += s.WorkingHours()
	}
	projected := existingHours + shift.WorkingHours()
	if projected > m.cfg.MaxHoursPerWeek && !force {
		return AssignReplacementResponse{}, domain.NewError(domain.KindConflict,
			"projected weekly hours exceed the cap; pass force=true to override", domain.ErrWeeklyHoursCapExceeded)
	}

	original := shift.OriginalEmployeeID
	shift.Status = domain.ShiftCovered
	shift.EmployeeID = employeeID
	shift.CoveredByID = &employeeID
	shift.OriginalEmployeeID = original

	if err := m.schedules.UpdateShift(*shift); err != nil {
		return AssignReplacementResponse{}, err
	}

	if m.notifier != nil {
		if original != nil {
			m.notifier.Notify(*original, "your shift has been covered by a replacement")
		}
		m.notifier.Notify(employeeID, "you have been assigned to cover a call-out shift")
	}

	return AssignReplacementResponse{Shift: *shift}, nil
}

// RevertCallout is allowed only while status is called_out (not covered).
// It clears call-out metadata and restores original_employee_id as
// employee_id; fails loudly if that field was never set, since a revert
// with nothing to revert to indicates caller or data corruption (§9 Open
// Question: resolved in favor of a hard failure, not a silent no-op).
func (m *Manager) RevertCallout(shiftID int64) (domain.Shift, error) {
	shift, err := m.schedules.GetShift(shiftID)
	if err != nil {
		return domain.Shift{}, err
	}
	if shift == nil {
		return domain.Shift{}, domain.NewError(domain.KindNotFound, "shift not found", domain.ErrShiftNotFound)
	}
	if shift.Status != domain.ShiftCalledOut {
		return domain.Shift{}, domain.NewError(domain.KindPreconditionViolated, "shift is not called_out", domain.ErrShiftNotCalledOut)
	}
	if shift.OriginalEmployeeID == nil {
		return domain.Shift{}, domain.NewError(domain.KindPreconditionViolated, "called_out shift is missing original_employee_id", domain.ErrMissingOriginalEmployee)
	}

	shift.EmployeeID = *shift.OriginalEmployeeID
	shift.Status = domain.ShiftScheduled
	shift.OriginalEmployeeID = nil
	shift.CoveredByID = nil
	shift.CalloutReason = ""
	shift.CalloutTime = nil

	if err := m.schedules.UpdateShift(*shift); err != nil {
		return domain.Shift{}, err
	}
	return *shift, nil
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
