// Package optimizer implements the Constraint Optimizer (C4): a CP-SAT-style
// boolean model over a fixed shift-template catalog, solved with the
// nextmv-io/sdk mip package and the HiGHS backend (go-highs/go-mip), grounded
// on _examples/nextmv-io-community-apps/shift-scheduling's demand-coverage
// MIP construction.
package optimizer

// Template is one of the eight fixed shift shapes the optimizer assigns.
// Indexed 0..7 for locks and overrides (§4.4).
type Template struct {
	Index        int
	StartHour    int
	EndHour      int
	BreakMinutes int
}

// ElapsedHours is the wall-clock span of the template, break included.
func (t Template) ElapsedHours() float64 { return float64(t.EndHour - t.StartHour) }

// WorkingHours is elapsed hours minus the break.
func (t Template) WorkingHours() float64 {
	return t.ElapsedHours() - float64(t.BreakMinutes)/60.0
}

// CoversHour reports whether the template's shift spans the given hour.
func (t Template) CoversHour(hour int) bool {
	return hour >= t.StartHour && hour < t.EndHour
}

// Templates is the fixed catalog of eight shift shapes: six 8-hour-elapsed
// (30m break, 7.5 working hours) and two 9-hour-elapsed (60m break, 8
// working hours) — §4.4.
var Templates = []Template{
	{Index: 0, StartHour: 8, EndHour: 16, BreakMinutes: 30},
	{Index: 1, StartHour: 9, EndHour: 17, BreakMinutes: 30},
	{Index: 2, StartHour: 10, EndHour: 18, BreakMinutes: 30},
	{Index: 3, StartHour: 11, EndHour: 19, BreakMinutes: 30},
	{Index: 4, StartHour: 12, EndHour: 20, BreakMinutes: 30},
	{Index: 5, StartHour: 14, EndHour: 22, BreakMinutes: 30},
	{Index: 6, StartHour: 8, EndHour: 17, BreakMinutes: 60},
	{Index: 7, StartHour: 13, EndHour: 22, BreakMinutes: 60},
}
