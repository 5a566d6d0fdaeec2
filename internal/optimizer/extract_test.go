package optimizer

import "testing"

func TestComputeCoverage_FullyCovered(t *testing.T) {
	req := Request{
		WeekStart:          mon(),
		MinCoveragePercent: 80,
		Requirements: map[int]map[int]float64{
			0: {8: 2, 9: 2},
		},
	}
	assignments := []ProposedAssignment{
		{EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 10 * 60},
		{EmployeeID: 2, Date: mon(), StartTime: 8 * 60, EndTime: 10 * 60},
	}
	pct, warn := computeCoverage(req, assignments)
	if pct != 100 {
		t.Errorf("pct = %v, want 100", pct)
	}
	if warn {
		t.Error("should not warn at full coverage")
	}
}

func TestComputeCoverage_BelowThresholdWarns(t *testing.T) {
	req := Request{
		WeekStart:          mon(),
		MinCoveragePercent: 80,
		Requirements: map[int]map[int]float64{
			0: {8: 4},
		},
	}
	assignments := []ProposedAssignment{
		{EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 9 * 60},
	}
	pct, warn := computeCoverage(req, assignments)
	if pct != 25 {
		t.Errorf("pct = %v, want 25 (1 of 4 required)", pct)
	}
	if !warn {
		t.Error("expected a coverage warning below the 80%% threshold")
	}
}

func TestComputeCoverage_OverAssignmentDoesNotExceed100Percent(t *testing.T) {
	req := Request{
		WeekStart:          mon(),
		MinCoveragePercent: 80,
		Requirements: map[int]map[int]float64{
			0: {8: 1},
		},
	}
	assignments := []ProposedAssignment{
		{EmployeeID: 1, Date: mon(), StartTime: 8 * 60, EndTime: 9 * 60},
		{EmployeeID: 2, Date: mon(), StartTime: 8 * 60, EndTime: 9 * 60},
		{EmployeeID: 3, Date: mon(), StartTime: 8 * 60, EndTime: 9 * 60},
	}
	pct, warn := computeCoverage(req, assignments)
	if pct != 100 {
		t.Errorf("pct = %v, want 100 (coverage caps at required, not assigned)", pct)
	}
	if warn {
		t.Error("should not warn when over-assigned")
	}
}

func TestComputeCoverage_NoDemandReturnsFullCoverage(t *testing.T) {
	req := Request{WeekStart: mon(), MinCoveragePercent: 80, Requirements: map[int]map[int]float64{}}
	pct, warn := computeCoverage(req, nil)
	if pct != 100 || warn {
		t.Errorf("expected (100, false) with no demand, got (%v, %v)", pct, warn)
	}
}
