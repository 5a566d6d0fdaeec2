// Package config holds process-wide configuration, loaded the way the
// teacher loads its daemon config: sane defaults overlaid by an optional
// TOML file (github.com/BurntSushi/toml).
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the process-wide defaults of §6. Per-store LaborStandard
// rows override Productivity/MinShiftHours/MaxShiftHours.
type Config struct {
	Labor   LaborConfig   `toml:"labor"`
	Store   StoreConfig   `toml:"store"`
	Solver  SolverConfig  `toml:"solver"`
	Forecast ForecastConfig `toml:"forecast"`
}

// LaborConfig holds the labor-rule thresholds the Compliance Engine and
// Optimizer read at construction (§4.3: "never embedded constants outside
// the table").
type LaborConfig struct {
	MaxHoursPerWeek        float64 `toml:"max_hours_per_week"`
	MaxHoursPerDay         float64 `toml:"max_hours_per_day"`
	DaysOnPerWeek          int     `toml:"days_on_per_week"`
	BreakMinutes8HrShift   int     `toml:"break_minutes_8hr_shift"`
	BreakMinutes9HrShift   int     `toml:"break_minutes_9hr_shift"`
	WeeklyWarningThreshold float64 `toml:"weekly_warning_threshold"`
}

// StoreConfig holds the default store operating window and the default
// productivity/shift-bound values a per-store LaborStandard overrides.
type StoreConfig struct {
	OpenHour                int     `toml:"store_open_hour"`
	CloseHour               int     `toml:"store_close_hour"`
	DefaultOrdersPerPicker  float64 `toml:"default_orders_per_picker_hour"`
	DefaultMinShiftHours    float64 `toml:"default_min_shift_hours"`
	DefaultMaxShiftHours    float64 `toml:"default_max_shift_hours"`
}

// SolverConfig holds optimizer defaults.
type SolverConfig struct {
	TimeoutSeconds        int     `toml:"timeout_seconds"`
	PreviewTimeoutSeconds int     `toml:"preview_timeout_seconds"`
	MinCoveragePercent    float64 `toml:"min_coverage_percent"`
}

// ForecastConfig holds forecaster defaults.
type ForecastConfig struct {
	LookbackWeeks int `toml:"lookback_weeks"`
}

// DefaultConfig returns the documented production defaults (§6).
func DefaultConfig() Config {
	return Config{
		Labor: LaborConfig{
			MaxHoursPerWeek:        44,
			MaxHoursPerDay:         8,
			DaysOnPerWeek:          6,
			BreakMinutes8HrShift:   30,
			BreakMinutes9HrShift:   60,
			WeeklyWarningThreshold: 40,
		},
		Store: StoreConfig{
			OpenHour:               8,
			CloseHour:              22,
			DefaultOrdersPerPicker: 10,
			DefaultMinShiftHours:   4,
			DefaultMaxShiftHours:   8,
		},
		Solver: SolverConfig{
			TimeoutSeconds:        60,
			PreviewTimeoutSeconds: 30,
			MinCoveragePercent:    80,
		},
		Forecast: ForecastConfig{
			LookbackWeeks: 8,
		},
	}
}

// Load overlays a TOML file onto the defaults. A missing file is not an
// error — it simply yields the defaults, matching the teacher's
// "config file is optional" posture.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
