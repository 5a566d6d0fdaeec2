// Package compliance implements the Compliance Engine (C3): validation of
// shifts and schedules against labor invariants. Grounded on
// original_source/backend/app/services/compliance.py, translated into the
// teacher's idiom — a stateless engine over a narrow read-only repository
// trait (domain.ComplianceReader, per the source's own db-session-injection
// pattern) rather than a live ORM session.
package compliance

import (
	"fmt"
	"sort"
	"time"

	"github.com/pickfloor/scheduler/internal/config"
	"github.com/pickfloor/scheduler/internal/domain"
	"github.com/pickfloor/scheduler/internal/infra/observability"
)

// Code identifies a compliance rule.
type Code string

const (
	WeeklyHoursExceeded      Code = "weekly_hours_exceeded"
	DailyHoursExceeded       Code = "daily_hours_exceeded"
	ConsecutiveDaysExceeded  Code = "consecutive_days_exceeded"
	InsufficientBreak        Code = "insufficient_break"
	OutsideOperatingHours    Code = "outside_operating_hours"
	TimeOffConflict          Code = "time_off_conflict"
	AvailabilityConflict     Code = "availability_conflict"
	ShiftOverlap             Code = "shift_overlap"
)

// Severity classifies a Finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is a single compliance rule outcome.
type Finding struct {
	Code         Code
	Severity     Severity
	Message      string
	EmployeeID   int64
	EmployeeName string
	Date         *time.Time
	Details      map[string]any
}

// Result is the outcome of a validation run, grouped by severity and
// deduplicated at the schedule level by (type, employee, date) — §4.3.
type Result struct {
	IsCompliant bool
	Violations  []Finding // severity = error
	Warnings    []Finding // severity = warning
	Info        []Finding // severity = info
}

// Counts summarizes a Result for quick reporting.
func (r Result) Counts() map[Severity]int {
	return map[Severity]int{
		SeverityError:   len(r.Violations),
		SeverityWarning: len(r.Warnings),
		SeverityInfo:    len(r.Info),
	}
}

// Engine validates shifts and schedules against config-driven thresholds.
// All thresholds come from config.LaborConfig at construction — never
// embedded constants — per §4.3's determinism requirement.
type Engine struct {
	reader domain.ComplianceReader
	cfg    config.LaborConfig
}

// NewEngine constructs a compliance Engine.
func NewEngine(reader domain.ComplianceReader, cfg config.LaborConfig) *Engine {
	return &Engine{reader: reader, cfg: cfg}
}

func (e *Engine) employeeName(employeeID int64) string {
	name := e.reader.EmployeeName(employeeID)
	if name == "" {
		return fmt.Sprintf("Employee #%d", employeeID)
	}
	return name
}

// ValidateShift runs every check against one proposed or persisted shift.
// A nil-id shift is represented by domain.ProposedShift; ExcludeShiftID
// excludes the shift's own persisted row from the overlap check.
func (e *Engine) ValidateShift(shift domain.ProposedShift) (Result, error) {
	weekStart := domain.WeekStart(shift.Date)

	var findings []Finding
	checks := []func() ([]Finding, error){
		func() ([]Finding, error) { return e.validateDailyHours(shift.EmployeeID, shift.Date, &shift) },
		func() ([]Finding, error) { return e.validateWeeklyHours(shift.EmployeeID, weekStart, []domain.ProposedShift{shift}) },
		func() ([]Finding, error) { return e.validateConsecutiveDays(shift.EmployeeID, weekStart, []domain.ProposedShift{shift}) },
		func() ([]Finding, error) { return findingSlice{e.validateBreak(shift)}.filterNil(), nil },
		func() ([]Finding, error) { return e.validateTimeOff(shift.EmployeeID, shift.Date) },
		func() ([]Finding, error) { return e.validateAvailability(shift.EmployeeID, shift.Date) },
		func() ([]Finding, error) { return e.validateOverlap(shift) },
	}
	for _, check := range checks {
		fs, err := check()
		if err != nil {
			return Result{}, err
		}
		findings = append(findings, fs...)
	}

	observeFindings(findings)
	return categorize(findings), nil
}

// findings helper to allow a single-Finding-or-nil check to compose with
// the []Finding-returning ones above.
type findingSlice []Finding

func (fs findingSlice) filterNil() []Finding {
	var out []Finding
	for _, f := range fs {
		if f.Code != "" {
			out = append(out, f)
		}
	}
	return out
}

func (e *Engine) validateDailyHours(employeeID int64, date time.Time, proposed *domain.ProposedShift) ([]Finding, error) {
	weekStart := domain.WeekStart(date)
	existing, err := e.reader.ShiftsInWeek(employeeID, weekStart)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, s := range existing {
		if domain.CivilDate(s.Date).Equal(domain.CivilDate(date)) {
			if proposed != nil && proposed.ExcludeShiftID != nil && *proposed.ExcludeShiftID == s.ID {
				continue
			}
			total += s.WorkingHours()
		}
	}
	if proposed != nil && domain.CivilDate(proposed.Date).Equal(domain.CivilDate(date)) {
		total += proposed.WorkingHours()
	}

	if total > e.cfg.MaxHoursPerDay {
		d := domain.CivilDate(date)
		return []Finding{{
			Code: DailyHoursExceeded, Severity: SeverityError,
			Message:      fmt.Sprintf("daily hours (%.1f) exceed maximum (%.0f)", total, e.cfg.MaxHoursPerDay),
			EmployeeID:   employeeID,
			EmployeeName: e.employeeName(employeeID),
			Date:         &d,
			Details: map[string]any{
				"total_hours": round2(total), "max_hours": e.cfg.MaxHoursPerDay,
				"excess_hours": round2(total - e.cfg.MaxHoursPerDay),
			},
		}}, nil
	}
	return nil, nil
}

func (e *Engine) validateWeeklyHours(employeeID int64, weekStart time.Time, proposed []domain.ProposedShift) ([]Finding, error) {
	existing, err := e.reader.ShiftsInWeek(employeeID, weekStart)
	if err != nil {
		return nil, err
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	var total float64
	for _, s := range existing {
		total += s.WorkingHours()
	}
	for _, p := range proposed {
		d := domain.CivilDate(p.Date)
		if !d.Before(weekStart) && !d.After(weekEnd) {
			total += p.WorkingHours()
		}
	}

	if total > e.cfg.MaxHoursPerWeek {
		return []Finding{{
			Code: WeeklyHoursExceeded, Severity: SeverityError,
			Message:      fmt.Sprintf("weekly hours (%.1f) exceed maximum (%.0f)", total, e.cfg.MaxHoursPerWeek),
			EmployeeID:   employeeID,
			EmployeeName: e.employeeName(employeeID),
			Details: map[string]any{
				"total_hours": round2(total), "max_hours": e.cfg.MaxHoursPerWeek,
				"excess_hours": round2(total - e.cfg.MaxHoursPerWeek),
				"week_start":   weekStart.Format("2006-01-02"),
			},
		}}, nil
	}
	if total > e.cfg.WeeklyWarningThreshold {
		return []Finding{{
			Code: WeeklyHoursExceeded, Severity: SeverityWarning,
			Message:      fmt.Sprintf("approaching weekly hour limit (%.1f/%.0f)", total, e.cfg.MaxHoursPerWeek),
			EmployeeID:   employeeID,
			EmployeeName: e.employeeName(employeeID),
			Details: map[string]any{
				"total_hours": round2(total), "max_hours": e.cfg.MaxHoursPerWeek,
				"remaining_hours": round2(e.cfg.MaxHoursPerWeek - total),
			},
		}}, nil
	}
	return nil, nil
}

func (e *Engine) validateConsecutiveDays(employeeID int64, weekStart time.Time, proposed []domain.ProposedShift) ([]Finding, error) {
	existing, err := e.reader.ShiftsInWeek(employeeID, weekStart)
	if err != nil {
		return nil, err
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	workDates := map[time.Time]bool{}
	for _, s := range existing {
		workDates[domain.CivilDate(s.Date)] = true
	}
	for _, p := range proposed {
		d := domain.CivilDate(p.Date)
		if !d.Before(weekStart) && !d.After(weekEnd) {
			workDates[d] = true
		}
	}

	if len(workDates) > e.cfg.DaysOnPerWeek {
		dates := make([]string, 0, len(workDates))
		for d := range workDates {
			dates = append(dates, d.Format("2006-01-02"))
		}
		sort.Strings(dates)
		return []Finding{{
			Code: ConsecutiveDaysExceeded, Severity: SeverityError,
			Message:      fmt.Sprintf("scheduled %d days (maximum is %d)", len(workDates), e.cfg.DaysOnPerWeek),
			EmployeeID:   employeeID,
			EmployeeName: e.employeeName(employeeID),
			Details: map[string]any{
				"days_scheduled": len(workDates), "max_consecutive_days": e.cfg.DaysOnPerWeek,
				"work_dates": dates, "week_start": weekStart.Format("2006-01-02"),
			},
		}}, nil
	}
	return nil, nil
}

// validateBreak checks elapsed-hours-keyed break requirements. Returns a
// zero-value Finding (filtered by filterNil) when compliant.
func (e *Engine) validateBreak(shift domain.ProposedShift) Finding {
	totalHours := shift.ElapsedHours()

	var required int
	switch {
	case totalHours >= 9:
		required = e.cfg.BreakMinutes9HrShift
	case totalHours >= 8:
		required = e.cfg.BreakMinutes8HrShift
	}

	if shift.BreakMinutes < required {
		d := domain.CivilDate(shift.Date)
		return Finding{
			Code: InsufficientBreak, Severity: SeverityError,
			Message:      fmt.Sprintf("insufficient break (%dm) for %.1fh shift (requires %dm)", shift.BreakMinutes, totalHours, required),
			EmployeeID:   shift.EmployeeID,
			EmployeeName: e.employeeName(shift.EmployeeID),
			Date:         &d,
			Details: map[string]any{
				"shift_hours": round2(totalHours), "break_minutes": shift.BreakMinutes,
				"required_break_minutes": required,
			},
		}
	}
	return Finding{}
}

func (e *Engine) validateTimeOff(employeeID int64, date time.Time) ([]Finding, error) {
	timeOff, err := e.reader.TimeOffForDate(employeeID, date)
	if err != nil {
		return nil, err
	}
	if timeOff == nil {
		return nil, nil
	}
	d := domain.CivilDate(date)
	return []Finding{{
		Code: TimeOffConflict, Severity: SeverityError,
		Message:      fmt.Sprintf("shift conflicts with approved time off (%s to %s)", timeOff.StartDate.Format("2006-01-02"), timeOff.EndDate.Format("2006-01-02")),
		EmployeeID:   employeeID,
		EmployeeName: e.employeeName(employeeID),
		Date:         &d,
		Details: map[string]any{
			"time_off_start": timeOff.StartDate.Format("2006-01-02"),
			"time_off_end":   timeOff.EndDate.Format("2006-01-02"),
			"time_off_id":    timeOff.ID,
		},
	}}, nil
}

func (e *Engine) validateAvailability(employeeID int64, date time.Time) ([]Finding, error) {
	dow := domain.DayOfWeek(date)
	avail, err := e.reader.AvailabilityFor(employeeID, dow)
	if err != nil {
		return nil, err
	}
	if avail.IsAvailable {
		return nil, nil
	}
	d := domain.CivilDate(date)
	return []Finding{{
		Code: AvailabilityConflict, Severity: SeverityWarning,
		Message:      fmt.Sprintf("employee marked unavailable on %s", dayName(dow)),
		EmployeeID:   employeeID,
		EmployeeName: e.employeeName(employeeID),
		Date:         &d,
		Details:      map[string]any{"day_of_week": dow, "day_name": dayName(dow)},
	}}, nil
}

func (e *Engine) validateOverlap(shift domain.ProposedShift) ([]Finding, error) {
	weekStart := domain.WeekStart(shift.Date)
	existing, err := e.reader.ShiftsInWeek(shift.EmployeeID, weekStart)
	if err != nil {
		return nil, err
	}

	var findings []Finding
	for _, s := range existing {
		if !domain.CivilDate(s.Date).Equal(domain.CivilDate(shift.Date)) {
			continue
		}
		if shift.ExcludeShiftID != nil && *shift.ExcludeShiftID == s.ID {
			continue
		}
		if shift.Overlaps(s) {
			d := domain.CivilDate(shift.Date)
			findings = append(findings, Finding{
				Code: ShiftOverlap, Severity: SeverityError,
				Message:      fmt.Sprintf("shift overlaps with existing shift (%d-%d)", s.StartTime, s.EndTime),
				EmployeeID:   shift.EmployeeID,
				EmployeeName: e.employeeName(shift.EmployeeID),
				Date:         &d,
				Details: map[string]any{
					"proposed_start": shift.StartTime, "proposed_end": shift.EndTime,
					"existing_start": s.StartTime, "existing_end": s.EndTime, "existing_shift_id": s.ID,
				},
			})
		}
	}
	return findings, nil
}

// ValidateSchedule runs every check across every shift in a schedule,
// grouped by employee, then deduplicates by (code, employee, date) — §4.3.
func (e *Engine) ValidateSchedule(shifts []domain.Shift) (Result, error) {
	byEmployee := map[int64][]domain.Shift{}
	for _, s := range shifts {
		byEmployee[s.EmployeeID] = append(byEmployee[s.EmployeeID], s)
	}

	var all []Finding
	for employeeID, empShifts := range byEmployee {
		if len(empShifts) == 0 {
			continue
		}
		weekStart := domain.WeekStart(empShifts[0].Date)

		fs, err := e.validateWeeklyHours(employeeID, weekStart, nil)
		if err != nil {
			return Result{}, err
		}
		all = append(all, fs...)

		fs, err = e.validateConsecutiveDays(employeeID, weekStart, nil)
		if err != nil {
			return Result{}, err
		}
		all = append(all, fs...)

		for _, shift := range empShifts {
			fs, err := e.validateDailyHours(employeeID, shift.Date, nil)
			if err != nil {
				return Result{}, err
			}
			all = append(all, fs...)

			shiftID := shift.ID
			proposed := domain.ProposedShift{
				EmployeeID: employeeID, Date: shift.Date, StartTime: shift.StartTime,
				EndTime: shift.EndTime, BreakMinutes: shift.BreakMinutes, ExcludeShiftID: &shiftID,
			}
			all = append(all, findingSlice{e.validateBreak(proposed)}.filterNil()...)

			fs, err = e.validateTimeOff(employeeID, shift.Date)
			if err != nil {
				return Result{}, err
			}
			all = append(all, fs...)

			fs, err = e.validateAvailability(employeeID, shift.Date)
			if err != nil {
				return Result{}, err
			}
			all = append(all, fs...)

			fs, err = e.validateOverlap(proposed)
			if err != nil {
				return Result{}, err
			}
			all = append(all, fs...)
		}
	}

	deduped := dedupe(all)
	observeFindings(deduped)
	return categorize(deduped), nil
}

type dedupeKey struct {
	code       Code
	employeeID int64
	date       string
}

func dedupe(findings []Finding) []Finding {
	seen := map[dedupeKey]bool{}
	var out []Finding
	for _, f := range findings {
		dateStr := ""
		if f.Date != nil {
			dateStr = f.Date.Format("2006-01-02")
		}
		key := dedupeKey{code: f.Code, employeeID: f.EmployeeID, date: dateStr}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

func categorize(findings []Finding) Result {
	var r Result
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			r.Violations = append(r.Violations, f)
		case SeverityWarning:
			r.Warnings = append(r.Warnings, f)
		default:
			r.Info = append(r.Info, f)
		}
	}
	r.IsCompliant = len(r.Violations) == 0
	return r
}

func observeFindings(findings []Finding) {
	for _, f := range findings {
		observability.ComplianceViolations.WithLabelValues(string(f.Code), string(f.Severity)).Inc()
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func dayName(dow int) string {
	if dow < 0 || dow > 6 {
		return ""
	}
	return weekdayNames[dow]
}
