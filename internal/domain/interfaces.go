package domain

import "time"

// ─── Repository Interfaces ──────────────────────────────────────────────────
// These interfaces define boundaries between layers. Infrastructure
// implements them; the compliance engine and the optimizer depend only on
// the narrow read-only views they need (§9 design note: decouple the
// Compliance Engine from the ORM via a narrow repository trait).

// StoreRepository abstracts store lookups.
type StoreRepository interface {
	GetStore(storeID int64) (*Store, error)
	GetLaborStandard(storeID int64) (*LaborStandard, error)
}

// EmployeeRepository abstracts employee and availability lookups.
type EmployeeRepository interface {
	GetEmployee(employeeID int64) (*Employee, error)
	ListActiveEmployees(storeID int64) ([]Employee, error)
	AvailabilityFor(employeeID int64, dayOfWeek int) (Availability, error)
}

// TimeOffRepository abstracts approved-time-off lookups.
type TimeOffRepository interface {
	TimeOffForDate(employeeID int64, date time.Time) (*TimeOffRequest, error)
	ApprovedTimeOffInRange(employeeID int64, start, end time.Time) ([]TimeOffRequest, error)
}

// ComplianceReader is the narrow read-only view the Compliance Engine needs.
// It depends on nothing but these four queries (§9 design note).
type ComplianceReader interface {
	ShiftsInWeek(employeeID int64, weekStart time.Time) ([]Shift, error)
	TimeOffForDate(employeeID int64, date time.Time) (*TimeOffRequest, error)
	AvailabilityFor(employeeID int64, dayOfWeek int) (Availability, error)
	EmployeeName(employeeID int64) string
}

// ScheduleRepository abstracts schedule and shift persistence.
type ScheduleRepository interface {
	GetSchedule(scheduleID int64) (*Schedule, error)
	GetDraftSchedule(storeID int64, weekStart time.Time) (*Schedule, error)
	GetPublishedSchedule(storeID int64, weekStart time.Time) (*Schedule, error)
	CreateSchedule(s Schedule) (int64, error)
	UpdateScheduleStatus(scheduleID int64, status ScheduleStatus, publishedAt *time.Time) error
	DeleteSchedule(scheduleID int64) error

	ShiftsForSchedule(scheduleID int64) ([]Shift, error)
	GetShift(shiftID int64) (*Shift, error)
	InsertShift(s Shift) (int64, error)
	UpdateShift(s Shift) error
	DeleteShiftsForSchedule(scheduleID int64) error

	// ReplaceShifts atomically deletes every shift under scheduleID and
	// inserts the given set in its place, returning the inserted rows with
	// their assigned ids (§5: apply_schedule must be atomic).
	ReplaceShifts(scheduleID int64, shifts []Shift) ([]Shift, error)

	// ExchangeShiftEmployees atomically swaps the employee_id fields of the
	// two given shifts, returning both rows in their new state (§4.5 "Swap
	// approval atomically exchanges the employee_id fields").
	ExchangeShiftEmployees(shiftAID, shiftBID int64) (Shift, Shift, error)
}

// HistoricalOrderRepository abstracts historical demand reads.
type HistoricalOrderRepository interface {
	HistoricalOrders(storeID int64, lookbackWeeks int, before time.Time) ([]HistoricalOrder, error)
}

// ForecastRepository abstracts forecast persistence.
type ForecastRepository interface {
	SaveForecasts(storeID int64, weekStart time.Time, forecasts []OrderForecast) (int, error)
	ForecastsForDay(storeID int64, date time.Time) ([]OrderForecast, error)
	ForecastsForWeek(storeID int64, weekStart time.Time) ([]OrderForecast, error)
	UpdateActual(storeID int64, date time.Time, hour int, actual float64) (bool, error)
	ForecastsWithActuals(storeID int64, start, end time.Time) ([]OrderForecast, error)
}

// SwapRepository abstracts shift-swap persistence.
type SwapRepository interface {
	CreateSwap(swap Swap) (int64, error)
	GetSwap(swapID int64) (*Swap, error)
	OpenSwapForShift(shiftID int64) (*Swap, error)
	UpdateSwap(swap Swap) error
}

// Notifier abstracts outbound employee notifications. The core enqueues
// one notification per affected employee; delivery is out of scope (§1).
type Notifier interface {
	Notify(employeeID int64, message string)
}

// Swap is a pending/resolved shift-swap request between two shifts.
type Swap struct {
	ID              int64
	RequesterShiftID int64
	AccepterShiftID  *int64
	Status           SwapStatus
	ApprovedBy       string
	ApprovedAt       *time.Time
	CreatedAt        time.Time
}
