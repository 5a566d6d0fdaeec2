package optimizer

import (
	"time"

	"github.com/nextmv-io/sdk/mip"
)

// extractSolution materializes assigned variables into shifts and computes
// coverage, following §4.4's "solution extraction" step.
func extractSolution(req Request, b *built, solution mip.Solution, elapsed time.Duration) Result {
	result := Result{RunTime: elapsed}

	switch {
	case solution == nil || !solution.HasValues():
		result.Status = StatusInfeasible
		result.RemediationHints = append(result.RemediationHints,
			"no feasible assignment under current locks, overrides, and availability — relax a constraint or add eligible employees")
		return result
	case solution.IsOptimal():
		result.Status = StatusOptimal
	default:
		result.Status = StatusFeasible
	}

	result.ObjectiveValue = solution.ObjectiveValue()

	assignedEmployees := map[int64]bool{}
	for key, v := range b.vars {
		if solution.Value(v) < 0.9 {
			continue
		}
		tmpl := b.templates[key.templateIdx]
		date := req.WeekStart.AddDate(0, 0, key.day)
		result.Assignments = append(result.Assignments, ProposedAssignment{
			EmployeeID:   key.employeeID,
			Date:         date,
			StartTime:    tmpl.StartHour * 60,
			EndTime:      tmpl.EndHour * 60,
			BreakMinutes: tmpl.BreakMinutes,
			WorkingHours: tmpl.WorkingHours(),
			TemplateIdx:  tmpl.Index,
		})
		assignedEmployees[key.employeeID] = true
	}

	for _, ec := range req.Employees {
		if !assignedEmployees[ec.Employee.ID] {
			result.NeverScheduled = append(result.NeverScheduled, ec.Employee.ID)
		}
	}

	result.CoveragePercent, result.CoverageWarning = computeCoverage(req, result.Assignments)
	result.LockAnnotations = req.LockedShifts
	result.OverrideAnnotations = req.Overrides
	return result
}

// computeCoverage reports covered = Σ min(assigned_count, required) over
// every demand slot, and whether it falls below min_coverage_percent (§4.4).
func computeCoverage(req Request, assignments []ProposedAssignment) (float64, bool) {
	assignedPerSlot := map[[2]int]int{}
	for _, a := range assignments {
		day := int(a.Date.Sub(req.WeekStart).Hours() / 24)
		for hour := a.StartTime / 60; hour < a.EndTime/60; hour++ {
			assignedPerSlot[[2]int{day, hour}]++
		}
	}

	var covered, totalDemand float64
	for day, byHour := range req.Requirements {
		for hour, required := range byHour {
			totalDemand += required
			assigned := float64(assignedPerSlot[[2]int{day, hour}])
			if assigned < required {
				covered += assigned
			} else {
				covered += required
			}
		}
	}

	if totalDemand == 0 {
		return 100, false
	}
	pct := covered / totalDemand * 100
	return pct, pct < req.MinCoveragePercent
}
