package optimizer

import (
	"context"
	"time"

	"github.com/pickfloor/scheduler/internal/config"
	"github.com/pickfloor/scheduler/internal/domain"
	"github.com/pickfloor/scheduler/internal/laborstandards"
)

// Service wires the pure model builder/solver to persistence, exposing the
// §6 external-interface operations (optimize, apply_schedule, shift_templates).
type Service struct {
	stores    domain.StoreRepository
	employees domain.EmployeeRepository
	timeOff   domain.TimeOffRepository
	schedules domain.ScheduleRepository
	bridge    *laborstandards.Bridge
	labor     config.LaborConfig
}

// NewService constructs an optimizer Service. labor supplies the
// process-wide weekly-hours and days-on-per-week caps (§6 Configuration);
// a per-store LaborStandard overrides only productivity and shift-length
// bounds, not these caps.
func NewService(
	stores domain.StoreRepository,
	employees domain.EmployeeRepository,
	timeOff domain.TimeOffRepository,
	schedules domain.ScheduleRepository,
	bridge *laborstandards.Bridge,
	labor config.LaborConfig,
) *Service {
	return &Service{stores: stores, employees: employees, timeOff: timeOff, schedules: schedules, bridge: bridge, labor: labor}
}

// ShiftTemplates returns the fixed eight-template catalog (§4.4).
func (s *Service) ShiftTemplates() []Template { return Templates }

// weekShiftsReader is the per-employee week lookup the eligibility pruner
// needs, satisfied by domain.ComplianceReader. Every persisted shift of the
// employee in that week counts as existing, including shifts of a draft
// schedule for the same store and week that ApplySchedule later replaces.
type weekShiftsReader interface {
	ShiftsInWeek(employeeID int64, weekStart time.Time) ([]domain.Shift, error)
}

// Optimize builds and solves the model for (store, week), honoring locks,
// overrides, and a coverage floor (§4.4, §6 `optimize`).
func (s *Service) Optimize(
	ctx context.Context,
	reader weekShiftsReader,
	storeID int64,
	weekStart time.Time,
	timeoutSeconds int,
	minCoveragePercent float64,
	locked []LockedShift,
	overrides []Override,
) (Result, error) {
	if !domain.IsMonday(weekStart) {
		return Result{}, domain.NewError(domain.KindInputInvalid, "week_start must be a Monday", domain.ErrWeekStartNotMonday)
	}

	store, err := s.stores.GetStore(storeID)
	if err != nil {
		return Result{}, err
	}
	employees, err := s.employees.ListActiveEmployees(storeID)
	if err != nil {
		return Result{}, err
	}

	req := Request{
		StoreID: storeID, WeekStart: weekStart,
		OperatingStart: store.OperatingStart, OperatingEnd: store.OperatingEnd,
		MaxHoursPerWeek: s.labor.MaxHoursPerWeek,
		MaxDaysPerWeek:  s.labor.DaysOnPerWeek,
		TimeoutSeconds:  timeoutSeconds, MinCoveragePercent: minCoveragePercent,
		LockedShifts: locked, Overrides: overrides,
	}

	req.Requirements = make(map[int]map[int]float64, 7)
	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day)
		hourly, err := s.bridge.HourlyRequirements(storeID, date)
		if err != nil {
			return Result{}, err
		}
		req.Requirements[day] = hourly
	}

	for _, emp := range employees {
		if !emp.IsSchedulable() {
			continue
		}
		existing, err := reader.ShiftsInWeek(emp.ID, weekStart)
		if err != nil {
			return Result{}, err
		}
		approvedTimeOff, err := s.timeOff.ApprovedTimeOffInRange(emp.ID, weekStart, weekStart.AddDate(0, 0, 6))
		if err != nil {
			return Result{}, err
		}
		ec := BuildEmployeeContext(emp, weekStart, existing, func(dow int) domain.Availability {
			a, _ := s.employees.AvailabilityFor(emp.ID, dow)
			return a
		}, approvedTimeOff, req.MaxHoursPerWeek, req.MaxDaysPerWeek)
		req.Employees = append(req.Employees, ec)
	}

	return Optimize(ctx, req)
}

// ApplySchedule persists proposed assignments as shifts, reusing a draft
// schedule if one exists or creating one otherwise (§4.4 "Apply").
// Deletion of old shifts and insertion of the new set happen inside one
// transaction via ReplaceShifts (§5).
func (s *Service) ApplySchedule(storeID int64, weekStart time.Time, assignments []ProposedAssignment, createdBy string) (int64, []domain.Shift, error) {
	draft, err := s.schedules.GetDraftSchedule(storeID, weekStart)
	if err != nil {
		return 0, nil, err
	}

	var scheduleID int64
	if draft != nil {
		scheduleID = draft.ID
	} else {
		scheduleID, err = s.schedules.CreateSchedule(domain.Schedule{
			StoreID: storeID, WeekStart: weekStart, Status: domain.ScheduleDraft, CreatedBy: createdBy,
		})
		if err != nil {
			return 0, nil, err
		}
	}

	replacement := make([]domain.Shift, 0, len(assignments))
	for _, a := range assignments {
		replacement = append(replacement, domain.Shift{
			ScheduleID: scheduleID, EmployeeID: a.EmployeeID, Date: a.Date,
			StartTime: a.StartTime, EndTime: a.EndTime, BreakMinutes: a.BreakMinutes,
			Status: domain.ShiftScheduled,
		})
	}

	shifts, err := s.schedules.ReplaceShifts(scheduleID, replacement)
	if err != nil {
		return 0, nil, err
	}
	return scheduleID, shifts, nil
}
