package optimizer

import "time"

// OverrideMode is a manual scheduling directive for one (employee, day).
type OverrideMode string

const (
	CannotWork OverrideMode = "cannot_work"
	MustWork   OverrideMode = "must_work"
)

// Override is a manual directive from §4.4's hard-constraint list.
type Override struct {
	EmployeeID          int64
	Day                 int // 0=Monday..6=Sunday
	Mode                OverrideMode
	PreferredTemplateIdx *int // objective bonus only, never a hard constraint
}

// LockedShift pins one (employee, day, template) assignment to 1.
type LockedShift struct {
	EmployeeID  int64
	Day         int
	TemplateIdx int
}

// Status is the solver's terminal outcome (§4.4).
type Status string

const (
	StatusOptimal    Status = "OPTIMAL"
	StatusFeasible   Status = "FEASIBLE"
	StatusInfeasible Status = "INFEASIBLE"
	StatusTimeout    Status = "TIMEOUT"
	StatusError      Status = "ERROR"
)

// ProposedAssignment is one materialized shift from the solution.
type ProposedAssignment struct {
	EmployeeID   int64
	Date         time.Time
	StartTime    int // minutes since midnight
	EndTime      int
	BreakMinutes int
	WorkingHours float64
	TemplateIdx  int
}

// Result is the output of one optimize() call (§4.4 "solution extraction").
type Result struct {
	Status               Status
	Assignments          []ProposedAssignment
	CoveragePercent       float64
	CoverageWarning       bool
	NeverScheduled        []int64 // employee ids assigned nothing
	LockAnnotations       []LockedShift
	OverrideAnnotations   []Override
	ObjectiveValue        float64
	RunTime               time.Duration
	RemediationHints      []string
}
