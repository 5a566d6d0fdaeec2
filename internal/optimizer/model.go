package optimizer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/pickfloor/scheduler/internal/infra/observability"
)

const (
	coverageReward  = 100.0
	overAssignPenalty = -10.0
	perShiftBonus   = 1.0
	// hoursScale integerizes fractional working hours for the weekly-hours
	// constraint, since the solver needs integral coefficients (§4.4).
	hoursScale = 10
)

// varKey identifies one decision variable x_{employee,day,template}.
type varKey struct {
	employeeID  int64
	day         int
	templateIdx int
}

// Request bundles everything optimize() needs to build and solve the model.
type Request struct {
	StoreID            int64
	WeekStart           time.Time
	OperatingStart      int
	OperatingEnd        int
	MaxHoursPerWeek     float64
	MaxDaysPerWeek      int
	Employees           []EmployeeContext
	Requirements        map[int]map[int]float64 // day -> hour -> required pickers
	LockedShifts        []LockedShift
	Overrides           []Override
	TimeoutSeconds      int
	MinCoveragePercent  float64
}

// built is the intermediate state produced while constructing the MIP model,
// carried forward into solution extraction.
type built struct {
	model     mip.Model
	vars      map[varKey]mip.Bool
	templates map[int]Template
}

// Optimize builds and solves the CP model for one (store, week) and returns
// the extracted assignments (§4.4).
func Optimize(ctx context.Context, req Request) (Result, error) {
	b := newBuiltModel(req)

	if len(b.vars) == 0 {
		return Result{Status: StatusInfeasible, RemediationHints: []string{"no eligible (employee, day, template) combinations — check availability, time off, and operating hours"}}, nil
	}

	solver, err := mip.NewSolver(mip.Highs, b.model)
	if err != nil {
		observability.OptimizerSolves.WithLabelValues(string(StatusError)).Inc()
		return Result{Status: StatusError}, fmt.Errorf("create solver: %w", err)
	}

	timeout := time.Duration(req.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	execCtx, cancel := context.WithTimeout(ctx, timeout+time.Second)
	defer cancel()

	type solveOutcome struct {
		solution mip.Solution
		err      error
	}
	done := make(chan solveOutcome, 1)
	start := time.Now()
	go func() {
		solution, err := solver.Solve(mip.SolveOptions{Duration: timeout})
		done <- solveOutcome{solution: solution, err: err}
	}()

	select {
	case <-execCtx.Done():
		observability.OptimizerSolves.WithLabelValues(string(StatusTimeout)).Inc()
		return Result{Status: StatusTimeout}, execCtx.Err()
	case out := <-done:
		elapsed := time.Since(start)
		observability.OptimizerSolveDuration.Observe(elapsed.Seconds())
		if out.err != nil {
			observability.OptimizerSolves.WithLabelValues(string(StatusError)).Inc()
			return Result{Status: StatusError}, fmt.Errorf("solve: %w", out.err)
		}
		result := extractSolution(req, b, out.solution, elapsed)
		observability.OptimizerSolves.WithLabelValues(string(result.Status)).Inc()
		return result, nil
	}
}

// newBuiltModel constructs decision variables, eligibility pruning, hard
// constraints, and the objective (§4.4).
func newBuiltModel(req Request) *built {
	m := mip.NewModel()
	m.Objective().SetMaximize()

	b := &built{model: m, vars: make(map[varKey]mip.Bool), templates: make(map[int]Template, len(Templates))}
	for _, t := range Templates {
		b.templates[t.Index] = t
	}

	overrideByKey := map[[2]int64]Override{}
	for _, o := range req.Overrides {
		overrideByKey[[2]int64{o.EmployeeID, int64(o.Day)}] = o
	}

	// Decision variables with eligibility pruning.
	for _, ec := range req.Employees {
		for day := 0; day < 7; day++ {
			for _, tmpl := range Templates {
				if !ec.Eligible(day, tmpl, req.OperatingStart, req.OperatingEnd) {
					continue
				}
				key := varKey{employeeID: ec.Employee.ID, day: day, templateIdx: tmpl.Index}
				b.vars[key] = m.NewBool()
			}
		}
	}

	// Locks: create the variable if it's absent (eligibility didn't produce
	// one) and force it to 1.
	for _, lock := range req.LockedShifts {
		key := varKey{employeeID: lock.EmployeeID, day: lock.Day, templateIdx: lock.TemplateIdx}
		v, ok := b.vars[key]
		if !ok {
			v = m.NewBool()
			b.vars[key] = v
		}
		c := m.NewConstraint(mip.Equal, 1.0)
		c.NewTerm(1.0, v)
	}

	for _, ec := range req.Employees {
		b.addEmployeeConstraints(m, ec, req, overrideByKey)
	}

	b.addObjective(m, req)

	return b
}

// addEmployeeConstraints wires the per-employee hard constraints: at most
// one shift/day, max days worked, max weekly hours, and overrides (§4.4).
func (b *built) addEmployeeConstraints(m mip.Model, ec EmployeeContext, req Request, overrides map[[2]int64]Override) {
	employeeID := ec.Employee.ID

	weeklyHours := m.NewConstraint(mip.LessThanOrEqual, scaleHours(minFloat(req.MaxHoursPerWeek, ec.MaxHoursRemaining)))

	var dayBooleans []mip.Bool
	maxDays := req.MaxDaysPerWeek
	if ec.MaxDaysRemaining < maxDays {
		maxDays = ec.MaxDaysRemaining
	}
	if maxDays > 6 {
		maxDays = 6
	}

	for day := 0; day < 7; day++ {
		var dayVars []mip.Bool
		atMostOne := m.NewConstraint(mip.LessThanOrEqual, 1.0)

		for _, tmpl := range Templates {
			key := varKey{employeeID: employeeID, day: day, templateIdx: tmpl.Index}
			v, ok := b.vars[key]
			if !ok {
				continue
			}
			atMostOne.NewTerm(1.0, v)
			weeklyHours.NewTerm(scaleHours(tmpl.WorkingHours()), v)
			dayVars = append(dayVars, v)
		}

		if override, ok := overrides[[2]int64{employeeID, int64(day)}]; ok {
			switch override.Mode {
			case CannotWork:
				for _, v := range dayVars {
					c := m.NewConstraint(mip.Equal, 0.0)
					c.NewTerm(1.0, v)
				}
			case MustWork:
				if len(dayVars) > 0 {
					mustWork := m.NewConstraint(mip.GreaterThanOrEqual, 1.0)
					for _, v := range dayVars {
						mustWork.NewTerm(1.0, v)
					}
				}
			}
		}

		// y_{e,d} = max_t x_{e,d,t}, approximated as a fresh boolean bounded
		// above by the sum of the day's assignment variables and below by
		// each individually, which is sufficient since the at-most-one
		// constraint already caps the sum at 1.
		if len(dayVars) > 0 {
			dayBool := m.NewBool()
			upper := m.NewConstraint(mip.LessThanOrEqual, 0.0)
			upper.NewTerm(1.0, dayBool)
			for _, v := range dayVars {
				upper.NewTerm(-1.0, v)
				lower := m.NewConstraint(mip.LessThanOrEqual, 0.0)
				lower.NewTerm(1.0, v)
				lower.NewTerm(-1.0, dayBool)
			}
			dayBooleans = append(dayBooleans, dayBool)
		}
	}

	if len(dayBooleans) > 0 {
		maxDaysConstraint := m.NewConstraint(mip.LessThanOrEqual, float64(maxDays))
		for _, db := range dayBooleans {
			maxDaysConstraint.NewTerm(1.0, db)
		}
	}
}

// sortedVarKeys returns b.vars' keys in a fixed order (employee, day,
// template), so objective construction enumerates covering variables
// deterministically regardless of Go's randomized map iteration (§4.4
// "enumerate S in a fixed order").
func (b *built) sortedVarKeys() []varKey {
	keys := make([]varKey, 0, len(b.vars))
	for key := range b.vars {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, c := keys[i], keys[j]
		if a.employeeID != c.employeeID {
			return a.employeeID < c.employeeID
		}
		if a.day != c.day {
			return a.day < c.day
		}
		return a.templateIdx < c.templateIdx
	})
	return keys
}

// addObjective wires the demand-coverage reward scheme of §4.4: +100 per
// covered slot up to the requirement, -10 per over-assignment, +1 per shift.
func (b *built) addObjective(m mip.Model, req Request) {
	obj := m.Objective()
	keys := b.sortedVarKeys()

	days := make([]int, 0, len(req.Requirements))
	for day := range req.Requirements {
		days = append(days, day)
	}
	sort.Ints(days)

	for _, day := range days {
		byHour := req.Requirements[day]
		hours := make([]int, 0, len(byHour))
		for hour := range byHour {
			hours = append(hours, hour)
		}
		sort.Ints(hours)

		for _, hour := range hours {
			required := byHour[hour]
			var covering []mip.Bool
			for _, key := range keys {
				if key.day != day {
					continue
				}
				if b.templates[key.templateIdx].CoversHour(hour) {
					covering = append(covering, b.vars[key])
				}
			}
			if len(covering) == 0 {
				continue
			}
			floorReq := int(required)
			for i, v := range covering {
				if i < floorReq {
					obj.NewTerm(coverageReward, v)
				} else {
					obj.NewTerm(overAssignPenalty, v)
				}
			}
		}
	}

	for _, key := range keys {
		obj.NewTerm(perShiftBonus, b.vars[key])
	}

	for _, o := range req.Overrides {
		if o.PreferredTemplateIdx == nil {
			continue
		}
		key := varKey{employeeID: o.EmployeeID, day: o.Day, templateIdx: *o.PreferredTemplateIdx}
		if v, ok := b.vars[key]; ok {
			obj.NewTerm(coverageReward/2, v)
		}
	}
}

func scaleHours(h float64) float64 {
	return float64(int(h*hoursScale + 0.5))
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
