package lifecycle

import (
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
)

// The fakes below are hand-rolled in-memory stand-ins for the repository
// interfaces, matching the teacher's own fake-not-mock test style.

type fakeSchedules struct {
	schedules map[int64]domain.Schedule
	shifts    map[int64]domain.Shift
	nextID    int64
}

func newFakeSchedules() *fakeSchedules {
	return &fakeSchedules{schedules: map[int64]domain.Schedule{}, shifts: map[int64]domain.Shift{}, nextID: 1}
}

func (f *fakeSchedules) GetSchedule(scheduleID int64) (*domain.Schedule, error) {
	s, ok := f.schedules[scheduleID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSchedules) GetDraftSchedule(storeID int64, weekStart time.Time) (*domain.Schedule, error) {
	for _, s := range f.schedules {
		if s.StoreID == storeID && s.WeekStart.Equal(weekStart) && s.Status == domain.ScheduleDraft {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSchedules) GetPublishedSchedule(storeID int64, weekStart time.Time) (*domain.Schedule, error) {
	for _, s := range f.schedules {
		if s.StoreID == storeID && s.WeekStart.Equal(weekStart) && s.Status == domain.SchedulePublished {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSchedules) CreateSchedule(s domain.Schedule) (int64, error) {
	id := f.nextID
	f.nextID++
	s.ID = id
	f.schedules[id] = s
	return id, nil
}

func (f *fakeSchedules) UpdateScheduleStatus(scheduleID int64, status domain.ScheduleStatus, publishedAt *time.Time) error {
	s := f.schedules[scheduleID]
	s.Status = status
	s.PublishedAt = publishedAt
	f.schedules[scheduleID] = s
	return nil
}

func (f *fakeSchedules) DeleteSchedule(scheduleID int64) error {
	delete(f.schedules, scheduleID)
	return nil
}

func (f *fakeSchedules) ShiftsForSchedule(scheduleID int64) ([]domain.Shift, error) {
	var out []domain.Shift
	for _, s := range f.shifts {
		if s.ScheduleID == scheduleID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSchedules) GetShift(shiftID int64) (*domain.Shift, error) {
	s, ok := f.shifts[shiftID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSchedules) InsertShift(s domain.Shift) (int64, error) {
	id := f.nextID
	f.nextID++
	s.ID = id
	f.shifts[id] = s
	return id, nil
}

func (f *fakeSchedules) UpdateShift(s domain.Shift) error {
	f.shifts[s.ID] = s
	return nil
}

func (f *fakeSchedules) DeleteShiftsForSchedule(scheduleID int64) error {
	for id, s := range f.shifts {
		if s.ScheduleID == scheduleID {
			delete(f.shifts, id)
		}
	}
	return nil
}

func (f *fakeSchedules) ReplaceShifts(scheduleID int64, shifts []domain.Shift) ([]domain.Shift, error) {
	f.DeleteShiftsForSchedule(scheduleID)
	out := make([]domain.Shift, len(shifts))
	for i, s := range shifts {
		id := f.nextID
		f.nextID++
		s.ID = id
		s.ScheduleID = scheduleID
		f.shifts[id] = s
		out[i] = s
	}
	return out, nil
}

func (f *fakeSchedules) ExchangeShiftEmployees(shiftAID, shiftBID int64) (domain.Shift, domain.Shift, error) {
	a, b := f.shifts[shiftAID], f.shifts[shiftBID]
	a.EmployeeID, b.EmployeeID = b.EmployeeID, a.EmployeeID
	f.shifts[shiftAID] = a
	f.shifts[shiftBID] = b
	return a, b, nil
}

type fakeEmployees struct {
	employees    map[int64]domain.Employee
	availability map[[2]int64]domain.Availability
}

func newFakeEmployees() *fakeEmployees {
	return &fakeEmployees{employees: map[int64]domain.Employee{}, availability: map[[2]int64]domain.Availability{}}
}

func (f *fakeEmployees) GetEmployee(employeeID int64) (*domain.Employee, error) {
	e, ok := f.employees[employeeID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeEmployees) ListActiveEmployees(storeID int64) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, e := range f.employees {
		if e.StoreID == storeID && e.IsSchedulable() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployees) AvailabilityFor(employeeID int64, dayOfWeek int) (domain.Availability, error) {
	if a, ok := f.availability[[2]int64{employeeID, int64(dayOfWeek)}]; ok {
		return a, nil
	}
	return domain.DefaultAvailability(employeeID, dayOfWeek), nil
}

type fakeTimeOff struct {
	byEmployee map[int64][]domain.TimeOffRequest
}

func newFakeTimeOff() *fakeTimeOff { return &fakeTimeOff{byEmployee: map[int64][]domain.TimeOffRequest{}} }

func (f *fakeTimeOff) TimeOffForDate(employeeID int64, date time.Time) (*domain.TimeOffRequest, error) {
	for _, t := range f.byEmployee[employeeID] {
		if t.Covers(date) {
			cp := t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTimeOff) ApprovedTimeOffInRange(employeeID int64, start, end time.Time) ([]domain.TimeOffRequest, error) {
	var out []domain.TimeOffRequest
	for _, t := range f.byEmployee[employeeID] {
		if t.Status == domain.TimeOffApproved {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeSwaps struct {
	swaps  map[int64]domain.Swap
	nextID int64
}

func newFakeSwaps() *fakeSwaps { return &fakeSwaps{swaps: map[int64]domain.Swap{}, nextID: 1} }

func (f *fakeSwaps) CreateSwap(s domain.Swap) (int64, error) {
	id := f.nextID
	f.nextID++
	s.ID = id
	f.swaps[id] = s
	return id, nil
}

func (f *fakeSwaps) GetSwap(swapID int64) (*domain.Swap, error) {
	s, ok := f.swaps[swapID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSwaps) OpenSwapForShift(shiftID int64) (*domain.Swap, error) {
	for _, s := range f.swaps {
		if s.RequesterShiftID == shiftID && (s.Status == domain.SwapPending || s.Status == domain.SwapAccepted) {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSwaps) UpdateSwap(s domain.Swap) error {
	f.swaps[s.ID] = s
	return nil
}

// fakeReader adapts fakeSchedules/fakeEmployees/fakeTimeOff into a
// domain.ComplianceReader for tests that don't need a real compliance.Engine.
type fakeReader struct {
	schedules *fakeSchedules
	employees *fakeEmployees
	timeOff   *fakeTimeOff
}

func (f *fakeReader) ShiftsInWeek(employeeID int64, weekStart time.Time) ([]domain.Shift, error) {
	var out []domain.Shift
	weekEnd := weekStart.AddDate(0, 0, 6)
	for _, s := range f.schedules.shifts {
		if s.EmployeeID != employeeID {
			continue
		}
		d := domain.CivilDate(s.Date)
		if !d.Before(weekStart) && !d.After(weekEnd) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeReader) TimeOffForDate(employeeID int64, date time.Time) (*domain.TimeOffRequest, error) {
	return f.timeOff.TimeOffForDate(employeeID, date)
}

func (f *fakeReader) AvailabilityFor(employeeID int64, dayOfWeek int) (domain.Availability, error) {
	return f.employees.AvailabilityFor(employeeID, dayOfWeek)
}

func (f *fakeReader) EmployeeName(employeeID int64) string {
	if e, ok := f.employees.employees[employeeID]; ok {
		return e.Name
	}
	return ""
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(employeeID int64, message string) {
	f.messages = append(f.messages, message)
}

func mon() time.Time { return time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC) }
