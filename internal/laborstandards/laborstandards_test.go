package laborstandards

import (
	"testing"
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
	"github.com/pickfloor/scheduler/internal/forecast"
)

type fakeStores struct {
	store    *domain.Store
	standard *domain.LaborStandard
}

func (f *fakeStores) GetStore(storeID int64) (*domain.Store, error) { return f.store, nil }
func (f *fakeStores) GetLaborStandard(storeID int64) (*domain.LaborStandard, error) {
	return f.standard, nil
}

type fakeOrders struct{ rows []domain.HistoricalOrder }

func (f *fakeOrders) HistoricalOrders(storeID int64, lookbackWeeks int, before time.Time) ([]domain.HistoricalOrder, error) {
	return f.rows, nil
}

type noopForecasts struct{}

func (noopForecasts) SaveForecasts(storeID int64, weekStart time.Time, forecasts []domain.OrderForecast) (int, error) {
	return 0, nil
}
func (noopForecasts) ForecastsForDay(storeID int64, date time.Time) ([]domain.OrderForecast, error) {
	return nil, nil
}
func (noopForecasts) ForecastsForWeek(storeID int64, weekStart time.Time) ([]domain.OrderForecast, error) {
	return nil, nil
}
func (noopForecasts) UpdateActual(storeID int64, date time.Time, hour int, actual float64) (bool, error) {
	return false, nil
}
func (noopForecasts) ForecastsWithActuals(storeID int64, start, end time.Time) ([]domain.OrderForecast, error) {
	return nil, nil
}

func newTestBridge(productivity float64) *Bridge {
	stores := &fakeStores{
		store:    &domain.Store{ID: 1, OperatingStart: 10, OperatingEnd: 12},
		standard: &domain.LaborStandard{StoreID: 1, OrdersPerPickerHour: productivity},
	}
	fc := forecast.NewService(stores, &fakeOrders{}, noopForecasts{}, 8)
	return NewBridge(stores, fc)
}

func TestHourlyRequirements_DividesByProductivity(t *testing.T) {
	bridge := newTestBridge(10)
	hourly, err := bridge.HourlyRequirements(1, time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("HourlyRequirements: %v", err)
	}
	if len(hourly) != 2 {
		t.Fatalf("expected 2 hours (10:00,11:00), got %d", len(hourly))
	}
	for hour, req := range hourly {
		if req < 0 {
			t.Errorf("hour %d: negative required hours %v", hour, req)
		}
	}
}

func TestHourlyRequirements_RejectsZeroProductivity(t *testing.T) {
	bridge := newTestBridge(0)
	_, err := bridge.HourlyRequirements(1, time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("expected an error when store productivity is not configured")
	}
}

func TestWeeklySummaryFor_AggregatesSevenDays(t *testing.T) {
	bridge := newTestBridge(10)
	summary, err := bridge.WeeklySummaryFor(1, time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("WeeklySummaryFor: %v", err)
	}
	if summary.Total <= 0 {
		t.Errorf("expected positive total requirement, got %v", summary.Total)
	}
	if summary.PeakDay < 0 || summary.PeakDay > 6 {
		t.Errorf("PeakDay out of range: %d", summary.PeakDay)
	}
}

func TestEstimateStaffingForDay_PickerCountsScaleWithTemplateHours(t *testing.T) {
	bridge := newTestBridge(10)
	estimate, err := bridge.EstimateStaffingForDay(1, time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("EstimateStaffingForDay: %v", err)
	}
	// Picker counts are ceil(required_hours/shift_length): a longer elapsed
	// shift never needs more pickers than a shorter one to cover the same
	// total hours.
	if estimate.PickersAt9Hour > estimate.PickersAt8Hour {
		t.Errorf("a 9-hour elapsed template should need no more pickers than an 8-hour one: 8hr=%v 9hr=%v",
			estimate.PickersAt8Hour, estimate.PickersAt9Hour)
	}
	if estimate.PickersAt8Hour != float64(int(estimate.PickersAt8Hour)) {
		t.Errorf("PickersAt8Hour should be a whole shift count, got %v", estimate.PickersAt8Hour)
	}
}

func TestEstimateStaffingForDay_PeakHoursTopThree(t *testing.T) {
	bridge := newTestBridge(10)
	estimate, err := bridge.EstimateStaffingForDay(1, time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("EstimateStaffingForDay: %v", err)
	}
	if len(estimate.PeakHours) > 3 {
		t.Errorf("expected at most 3 peak hours, got %d: %v", len(estimate.PeakHours), estimate.PeakHours)
	}
	if len(estimate.PeakHours) != len(estimate.HourlyBreakdown) && len(estimate.PeakHours) != 3 {
		t.Errorf("expected min(3, hours) peak hours, got %d of %d hours", len(estimate.PeakHours), len(estimate.HourlyBreakdown))
	}
}
