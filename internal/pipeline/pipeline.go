// Package pipeline sequences one schedule-generation call end to end:
// forecast -> labor requirements -> model build -> solve -> extract ->
// apply, as one strictly sequential unit with no observable intermediate
// state between stages (spec §5 "Ordering"). Grounded on the teacher's
// executor.go task-lifecycle pattern: timeout-bounded execution with
// structured logging at each transition.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pickfloor/scheduler/internal/config"
	"github.com/pickfloor/scheduler/internal/domain"
	"github.com/pickfloor/scheduler/internal/forecast"
	"github.com/pickfloor/scheduler/internal/optimizer"
)

// weekShiftsReader is the narrow view the optimizer needs of already
// persisted shifts for a given employee/week, satisfied by
// domain.ComplianceReader.
type weekShiftsReader interface {
	ShiftsInWeek(employeeID int64, weekStart time.Time) ([]domain.Shift, error)
}

// Pipeline wires the forecast service and optimizer service into one
// generate_schedule operation.
type Pipeline struct {
	forecasts *forecast.Service
	optimizer *optimizer.Service
	reader    weekShiftsReader
	solver    config.SolverConfig
}

// New constructs a Pipeline.
func New(forecasts *forecast.Service, opt *optimizer.Service, reader weekShiftsReader, solver config.SolverConfig) *Pipeline {
	return &Pipeline{forecasts: forecasts, optimizer: opt, reader: reader, solver: solver}
}

// GenerateResult is the outcome of one end-to-end schedule generation.
type GenerateResult struct {
	RunID          string
	ScheduleID     int64
	Shifts         []domain.Shift
	ForecastCount  int
	OptimizeResult optimizer.Result
}

// GenerateOptions carries the caller-supplied knobs for one run.
type GenerateOptions struct {
	TimeoutSeconds     int
	MinCoveragePercent float64
	Locked             []optimizer.LockedShift
	Overrides          []optimizer.Override
	CreatedBy          string
	Method             forecast.Method
}

// Generate runs the full forecast -> requirements -> solve -> extract ->
// apply pipeline for one (store, week). Each stage's output feeds the
// next with no branching: a failure at any stage aborts the run without
// partial persistence beyond what that stage itself already committed
// (save_forecast and apply_schedule are each independently idempotent,
// per §5 "Idempotency").
func (p *Pipeline) Generate(ctx context.Context, storeID int64, weekStart time.Time, opts GenerateOptions) (GenerateResult, error) {
	if !domain.IsMonday(weekStart) {
		return GenerateResult{}, domain.NewError(domain.KindInputInvalid, "week_start must be a Monday", domain.ErrWeekStartNotMonday)
	}

	method := opts.Method
	if method == "" {
		method = forecast.Ensemble
	}

	runID := uuid.NewString()

	log.Printf("[pipeline] run=%s store=%d week=%s stage=forecast method=%s", runID, storeID, weekStart.Format("2006-01-02"), method)
	forecastCount, err := p.forecasts.SaveForecast(storeID, weekStart, method)
	if err != nil {
		return GenerateResult{RunID: runID}, fmt.Errorf("forecast stage: %w", err)
	}

	timeoutSeconds := opts.TimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = p.solver.TimeoutSeconds
	}
	minCoverage := opts.MinCoveragePercent
	if minCoverage <= 0 {
		minCoverage = p.solver.MinCoveragePercent
	}

	log.Printf("[pipeline] run=%s store=%d week=%s stage=optimize timeout=%ds", runID, storeID, weekStart.Format("2006-01-02"), timeoutSeconds)
	result, err := p.optimizer.Optimize(ctx, p.reader, storeID, weekStart, timeoutSeconds, minCoverage, opts.Locked, opts.Overrides)
	if err != nil {
		return GenerateResult{RunID: runID}, fmt.Errorf("optimize stage: %w", err)
	}
	if result.Status == optimizer.StatusInfeasible || result.Status == optimizer.StatusTimeout || result.Status == optimizer.StatusError {
		return GenerateResult{RunID: runID, ForecastCount: forecastCount, OptimizeResult: result},
			domain.NewErrorWithPayload(domain.KindInfeasible, fmt.Sprintf("solve did not produce an applicable schedule: %s", result.Status), result)
	}

	log.Printf("[pipeline] run=%s store=%d week=%s stage=apply assignments=%d coverage=%.1f%%", runID, storeID, weekStart.Format("2006-01-02"), len(result.Assignments), result.CoveragePercent)
	scheduleID, shifts, err := p.optimizer.ApplySchedule(storeID, weekStart, result.Assignments, opts.CreatedBy)
	if err != nil {
		return GenerateResult{RunID: runID}, fmt.Errorf("apply stage: %w", err)
	}

	return GenerateResult{
		RunID:          runID,
		ScheduleID:     scheduleID,
		Shifts:         shifts,
		ForecastCount:  forecastCount,
		OptimizeResult: result,
	}, nil
}
