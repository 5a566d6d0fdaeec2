// Package lifecycle implements the Shift Lifecycle Manager (C5): publish,
// call-out, replacement selection, and the shift-swap state machine
// (spec §4.5), grounded on original_source/backend/app/services/schedule.go
// equivalents and the teacher's own state-transition style.
package lifecycle

import (
	"sort"
	"time"

	"github.com/pickfloor/scheduler/internal/compliance"
	"github.com/pickfloor/scheduler/internal/config"
	"github.com/pickfloor/scheduler/internal/domain"
	"github.com/pickfloor/scheduler/internal/infra/observability"
)

// Manager wires the Compliance Engine and persistence to the lifecycle
// operations of §4.5 and §6 ("Shift Lifecycle").
type Manager struct {
	schedules domain.ScheduleRepository
	employees domain.EmployeeRepository
	timeOff   domain.TimeOffRepository
	swaps     domain.SwapRepository
	reader    domain.ComplianceReader
	engine    *compliance.Engine
	notifier  domain.Notifier
	cfg       config.LaborConfig
}

// NewManager constructs a lifecycle Manager.
func NewManager(
	schedules domain.ScheduleRepository,
	employees domain.EmployeeRepository,
	timeOff domain.TimeOffRepository,
	swaps domain.SwapRepository,
	reader domain.ComplianceReader,
	engine *compliance.Engine,
	notifier domain.Notifier,
	cfg config.LaborConfig,
) *Manager {
	return &Manager{
		schedules: schedules, employees: employees, timeOff: timeOff, swaps: swaps,
		reader: reader, engine: engine, notifier: notifier, cfg: cfg,
	}
}

// PublishResult reports the outcome of a publish attempt.
type PublishResult struct {
	ScheduleID  int64
	Published   bool
	Compliance  compliance.Result
	PublishedAt time.Time
}

// Publish runs full schedule validation: errors always block; warnings
// block unless force is set. On success the schedule transitions
// draft -> published, stamps published_at, and notifies every distinct
// assigned employee (§4.5 "Publish").
func (m *Manager) Publish(scheduleID int64, force bool) (PublishResult, error) {
	schedule, err := m.schedules.GetSchedule(scheduleID)
	if err != nil {
		return PublishResult{}, err
	}
	if schedule == nil {
		return PublishResult{}, domain.NewError(domain.KindNotFound, "schedule not found", domain.ErrScheduleNotFound)
	}
	if schedule.Status == domain.SchedulePublished {
		return PublishResult{}, domain.NewError(domain.KindConflict, "schedule is already published", domain.ErrScheduleAlreadyPublished)
	}

	shifts, err := m.schedules.ShiftsForSchedule(scheduleID)
	if err != nil {
		return PublishResult{}, err
	}
	if len(shifts) == 0 {
		return PublishResult{}, domain.NewError(domain.KindPreconditionViolated, "schedule has no shifts", domain.ErrScheduleEmpty)
	}

	existing, err := m.schedules.GetPublishedSchedule(schedule.StoreID, schedule.WeekStart)
	if err != nil {
		return PublishResult{}, err
	}
	if existing != nil && existing.ID != schedule.ID {
		return PublishResult{}, domain.NewError(domain.KindConflict, "a published schedule already exists for this store and week", domain.ErrDuplicateSchedule)
	}

	result, err := m.engine.ValidateSchedule(shifts)
	if err != nil {
		return PublishResult{}, err
	}

	if !result.IsCompliant {
		return PublishResult{Compliance: result}, domain.NewErrorWithPayload(domain.KindComplianceViolated, "schedule has compliance violations that must be resolved before publishing", result)
	}
	if len(result.Warnings) > 0 && !force {
		return PublishResult{Compliance: result}, domain.NewErrorWithPayload(domain.KindComplianceWarning, "schedule has compliance warnings; pass force=true to publish anyway", result)
	}

	now := time.Now()
	if err := m.schedules.UpdateScheduleStatus(scheduleID, domain.SchedulePublished, &now); err != nil {
		return PublishResult{}, err
	}

	notified := map[int64]bool{}
	for _, s := range shifts {
		if notified[s.EmployeeID] {
			continue
		}
		notified[s.EmployeeID] = true
		if m.notifier != nil {
			m.notifier.Notify(s.EmployeeID, "your schedule for the week has been published")
		}
	}

	observability.SchedulesPublished.Inc()
	return PublishResult{ScheduleID: scheduleID, Published: true, Compliance: result, PublishedAt: now}, nil
}

// sortByAvailableThenHours orders replacement candidates for FindReplacements
// (callout.go): available candidates first, then by descending remaining
// weekly hours.
func sortByAvailableThenHours(candidates []ReplacementCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Available != candidates[j].Available {
			return candidates[i].Available
		}
		return candidates[i].RemainingWeeklyHours > candidates[j].RemainingWeeklyHours
	})
}
