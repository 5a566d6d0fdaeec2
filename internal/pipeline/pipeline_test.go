package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pickfloor/scheduler/internal/config"
	"github.com/pickfloor/scheduler/internal/domain"
	"github.com/pickfloor/scheduler/internal/forecast"
	"github.com/pickfloor/scheduler/internal/laborstandards"
	"github.com/pickfloor/scheduler/internal/optimizer"
)

type fakeStores struct{ store *domain.Store }

func (f *fakeStores) GetStore(storeID int64) (*domain.Store, error) { return f.store, nil }
func (f *fakeStores) GetLaborStandard(storeID int64) (*domain.LaborStandard, error) {
	return &domain.LaborStandard{StoreID: storeID, OrdersPerPickerHour: 10, MinShiftHours: 4, MaxShiftHours: 9}, nil
}

type fakeOrders struct{}

func (fakeOrders) HistoricalOrders(storeID int64, lookbackWeeks int, before time.Time) ([]domain.HistoricalOrder, error) {
	return nil, nil
}

// failingForecastRepo errors on SaveForecasts so the pipeline's forecast
// stage can be exercised without ever reaching the optimizer/solver.
type failingForecastRepo struct{}

func (failingForecastRepo) SaveForecasts(storeID int64, weekStart time.Time, forecasts []domain.OrderForecast) (int, error) {
	return 0, errors.New("disk full")
}
func (failingForecastRepo) ForecastsForDay(storeID int64, date time.Time) ([]domain.OrderForecast, error) {
	return nil, nil
}
func (failingForecastRepo) ForecastsForWeek(storeID int64, weekStart time.Time) ([]domain.OrderForecast, error) {
	return nil, nil
}
func (failingForecastRepo) UpdateActual(storeID int64, date time.Time, hour int, actual float64) (bool, error) {
	return false, nil
}
func (failingForecastRepo) ForecastsWithActuals(storeID int64, start, end time.Time) ([]domain.OrderForecast, error) {
	return nil, nil
}

func newTestPipeline(forecastsRepo domain.ForecastRepository) *Pipeline {
	stores := &fakeStores{store: &domain.Store{ID: 1, OperatingStart: 8, OperatingEnd: 22}}
	fc := forecast.NewService(stores, fakeOrders{}, forecastsRepo, 8)
	bridge := laborstandards.NewBridge(stores, fc)
	opt := optimizer.NewService(stores, nil, nil, nil, bridge, config.LaborConfig{MaxHoursPerWeek: 44, DaysOnPerWeek: 6})
	return New(fc, opt, nil, config.SolverConfig{TimeoutSeconds: 10, MinCoveragePercent: 80})
}

func monday() time.Time { return time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC) }

func TestGenerate_RejectsNonMondayWeekStart(t *testing.T) {
	p := newTestPipeline(failingForecastRepo{})
	_, err := p.Generate(context.Background(), 1, monday().AddDate(0, 0, 1), GenerateOptions{})
	if !errors.Is(err, domain.ErrWeekStartNotMonday) {
		t.Fatalf("expected ErrWeekStartNotMonday, got %v", err)
	}
}

func TestGenerate_ForecastStageFailureAbortsWithRunID(t *testing.T) {
	p := newTestPipeline(failingForecastRepo{})
	result, err := p.Generate(context.Background(), 1, monday(), GenerateOptions{})
	if err == nil {
		t.Fatal("expected an error from the failing forecast repository")
	}
	if !strings.Contains(err.Error(), "forecast stage") {
		t.Errorf("expected the error to be wrapped with the forecast stage, got %v", err)
	}
	if result.RunID == "" {
		t.Error("expected RunID to be populated even on an early-stage abort")
	}
	if result.ScheduleID != 0 || result.Shifts != nil {
		t.Error("expected no schedule or shifts on a forecast-stage failure")
	}
}
