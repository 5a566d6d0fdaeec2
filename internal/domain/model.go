// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import (
	"time"
)

// ─── Enums ───────────────────────────────────────────────────────────────

// EmployeeStatus is the lifecycle state of an Employee.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
	EmployeeOnLeave  EmployeeStatus = "on_leave"
)

// TimeOffStatus is the approval state of a TimeOffRequest.
type TimeOffStatus string

const (
	TimeOffPending   TimeOffStatus = "pending"
	TimeOffApproved  TimeOffStatus = "approved"
	TimeOffDenied    TimeOffStatus = "denied"
	TimeOffCancelled TimeOffStatus = "cancelled"
)

// ScheduleStatus is the lifecycle state of a Schedule.
type ScheduleStatus string

const (
	ScheduleDraft     ScheduleStatus = "draft"
	SchedulePublished ScheduleStatus = "published"
	ScheduleArchived  ScheduleStatus = "archived"
)

// ShiftStatus is the lifecycle state of a Shift.
type ShiftStatus string

const (
	ShiftScheduled ShiftStatus = "scheduled"
	ShiftCalledOut ShiftStatus = "called_out"
	ShiftCovered   ShiftStatus = "covered"
	ShiftNoShow    ShiftStatus = "no_show"
)

// SwapStatus is the state of a shift-swap request.
type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapApproved  SwapStatus = "approved"
	SwapDenied    SwapStatus = "denied"
	SwapCancelled SwapStatus = "cancelled"
)

// ─── Store ───────────────────────────────────────────────────────────────

// Store is a single order-picking location.
type Store struct {
	ID             int64
	Code           string
	OperatingStart int // hour-of-day, default 8
	OperatingEnd   int // hour-of-day, default 22
}

// DefaultOperatingStart and DefaultOperatingEnd are the fallback operating
// window when a Store record leaves them unset.
const (
	DefaultOperatingStart = 8
	DefaultOperatingEnd   = 22
)

// ─── Employee ────────────────────────────────────────────────────────────

// Employee belongs to exactly one Store.
type Employee struct {
	ID       int64
	StoreID  int64
	Name     string
	Status   EmployeeStatus
	HireDate time.Time
}

// IsSchedulable reports whether the employee may be considered by the
// optimizer or as a replacement candidate.
func (e Employee) IsSchedulable() bool {
	return e.Status == EmployeeActive
}

// ─── Availability ────────────────────────────────────────────────────────

// Availability records one (employee, day-of-week) preference row.
// A missing row for a given day means "available, no preferred window".
type Availability struct {
	EmployeeID     int64
	DayOfWeek      int // 0 = Monday .. 6 = Sunday
	IsAvailable    bool
	PreferredStart *int // hour-of-day, nil = no preference
	PreferredEnd   *int
}

// DefaultAvailability returns the implied row when none is persisted:
// available with no preferred window. Preserved deliberately (§9).
func DefaultAvailability(employeeID int64, dayOfWeek int) Availability {
	return Availability{EmployeeID: employeeID, DayOfWeek: dayOfWeek, IsAvailable: true}
}

// FitsWindow reports whether [startHour, endHour) fits inside the
// preferred window, if one is set. No preference always fits.
func (a Availability) FitsWindow(startHour, endHour int) bool {
	if a.PreferredStart == nil || a.PreferredEnd == nil {
		return true
	}
	return startHour >= *a.PreferredStart && endHour <= *a.PreferredEnd
}

// ─── TimeOffRequest ──────────────────────────────────────────────────────

// TimeOffRequest is a per-employee inclusive date range request.
type TimeOffRequest struct {
	ID         int64
	EmployeeID int64
	StartDate  time.Time
	EndDate    time.Time
	Status     TimeOffStatus
}

// Covers reports whether the approved request covers the given civil date.
func (t TimeOffRequest) Covers(date time.Time) bool {
	d := civilDate(date)
	return t.Status == TimeOffApproved &&
		!d.Before(civilDate(t.StartDate)) && !d.After(civilDate(t.EndDate))
}

// ─── Schedule ────────────────────────────────────────────────────────────

// Schedule is the per-(store, week) container that owns Shifts.
type Schedule struct {
	ID          int64
	StoreID     int64
	WeekStart   time.Time // always a Monday
	Status      ScheduleStatus
	CreatedBy   string
	PublishedAt *time.Time
}

// ─── Shift ───────────────────────────────────────────────────────────────

// Shift is a single employee assignment on one civil date.
type Shift struct {
	ID                 int64
	ScheduleID         int64
	EmployeeID         int64
	Date               time.Time
	StartTime          int // minutes since midnight
	EndTime             int // minutes since midnight
	BreakMinutes       int
	Status             ShiftStatus
	OriginalEmployeeID *int64
	CoveredByID        *int64
	CalloutReason      string
	CalloutTime        *time.Time
}

// ElapsedHours is the wall-clock span of the shift, break included.
func (s Shift) ElapsedHours() float64 {
	return float64(s.EndTime-s.StartTime) / 60.0
}

// WorkingHours is elapsed time minus break, in hours (GLOSSARY).
func (s Shift) WorkingHours() float64 {
	return s.ElapsedHours() - float64(s.BreakMinutes)/60.0
}

// Overlaps reports whether two same-date shifts' [start,end) ranges intersect.
func (s Shift) Overlaps(other Shift) bool {
	if !civilDate(s.Date).Equal(civilDate(other.Date)) {
		return false
	}
	return s.StartTime < other.EndTime && other.StartTime < s.EndTime
}

// ProposedShift is an unpersisted shift used as compliance-validation input.
// It has no id, matching the "dynamic instantiation" design note (§9): the
// source builds unpersisted shifts with sentinel ids, which this type
// eliminates entirely.
type ProposedShift struct {
	EmployeeID   int64
	Date         time.Time
	StartTime    int
	EndTime      int
	BreakMinutes int
	// ExcludeShiftID, when non-nil, excludes this persisted shift id from
	// the overlap check (used when validating an employee's own existing
	// shift against the rest of their week).
	ExcludeShiftID *int64
}

func (p ProposedShift) ElapsedHours() float64 {
	return float64(p.EndTime-p.StartTime) / 60.0
}

func (p ProposedShift) WorkingHours() float64 {
	return p.ElapsedHours() - float64(p.BreakMinutes)/60.0
}

func (p ProposedShift) Overlaps(other Shift) bool {
	if !civilDate(p.Date).Equal(civilDate(other.Date)) {
		return false
	}
	return p.StartTime < other.EndTime && other.StartTime < p.EndTime
}

// ─── HistoricalOrder / OrderForecast ─────────────────────────────────────

// HistoricalOrder is one observed (store, date, hour) order count.
type HistoricalOrder struct {
	StoreID     int64
	Date        time.Time
	Hour        int
	OrderCount  float64
	DayOfWeek   *int
	IsHoliday   bool
}

// OrderForecast is one predicted (store, date, hour) order count.
type OrderForecast struct {
	StoreID         int64
	Date            time.Time
	Hour            int
	PredictedOrders float64
	ActualOrders    *float64
}

// ─── LaborStandard ────────────────────────────────────────────────────────

// LaborStandard is the per-store productivity and shift-length configuration.
type LaborStandard struct {
	StoreID             int64
	OrdersPerPickerHour float64
	MinShiftHours       float64
	MaxShiftHours       float64
}

// ─── Derived helpers ──────────────────────────────────────────────────────

// civilDate truncates a time.Time to its civil date (no wall-clock part),
// so that date-only comparisons are well-defined regardless of the time
// component callers happen to carry.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CivilDate exports civilDate for cross-package use.
func CivilDate(t time.Time) time.Time { return civilDate(t) }

// WeekStart returns the Monday that begins the civil week containing t.
func WeekStart(t time.Time) time.Time {
	d := civilDate(t)
	// time.Monday == 1; Sunday == 0. Compute days since Monday.
	wd := int(d.Weekday())
	daysSinceMonday := (wd + 6) % 7
	return d.AddDate(0, 0, -daysSinceMonday)
}

// DayOfWeek returns 0=Monday..6=Sunday for the given civil date.
func DayOfWeek(t time.Time) int {
	wd := int(civilDate(t).Weekday())
	return (wd + 6) % 7
}

// IsMonday reports whether t's civil date is a Monday.
func IsMonday(t time.Time) bool {
	return DayOfWeek(t) == 0
}
