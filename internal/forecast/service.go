package forecast

import (
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
	"github.com/pickfloor/scheduler/internal/infra/observability"
)

// Service wires the pure Forecaster to persistence, exposing the §6
// external-interface operations (forecast_week, forecast_day, save_forecast,
// update_actuals, get_forecast_accuracy).
type Service struct {
	forecaster    *Forecaster
	stores        domain.StoreRepository
	forecasts     domain.ForecastRepository
	lookbackWeeks int
}

// NewService constructs a forecast Service.
func NewService(stores domain.StoreRepository, orders domain.HistoricalOrderRepository, forecasts domain.ForecastRepository, lookbackWeeks int) *Service {
	return &Service{
		forecaster:    NewForecaster(orders),
		stores:        stores,
		forecasts:     forecasts,
		lookbackWeeks: lookbackWeeks,
	}
}

func (s *Service) operatingWindow(storeID int64) (int, int, error) {
	store, err := s.stores.GetStore(storeID)
	if err != nil {
		return 0, 0, err
	}
	return store.OperatingStart, store.OperatingEnd, nil
}

// ForecastDay produces a DailyForecast for one store and date.
func (s *Service) ForecastDay(storeID int64, date time.Time, method Method) (DailyForecast, error) {
	start, end, err := s.operatingWindow(storeID)
	if err != nil {
		return DailyForecast{}, err
	}
	observability.ForecastsGenerated.WithLabelValues(string(method)).Inc()
	return s.forecaster.ForecastDay(storeID, date, method, s.lookbackWeeks, start, end)
}

// ForecastWeek produces a WeeklyForecast for one store and Monday.
func (s *Service) ForecastWeek(storeID int64, weekStart time.Time, method Method) (WeeklyForecast, error) {
	if !domain.IsMonday(weekStart) {
		return WeeklyForecast{}, domain.NewError(domain.KindInputInvalid, "week_start must be a Monday", domain.ErrWeekStartNotMonday)
	}
	start, end, err := s.operatingWindow(storeID)
	if err != nil {
		return WeeklyForecast{}, err
	}
	observability.ForecastsGenerated.WithLabelValues(string(method)).Inc()
	return s.forecaster.ForecastWeek(storeID, weekStart, method, s.lookbackWeeks, start, end)
}

// SaveForecast generates a week of predictions and persists them, replacing
// any existing rows for that (store, week) — §4.2 persistence semantics.
func (s *Service) SaveForecast(storeID int64, weekStart time.Time, method Method) (int, error) {
	week, err := s.ForecastWeek(storeID, weekStart, method)
	if err != nil {
		return 0, err
	}
	var rows []domain.OrderForecast
	for _, day := range week.Days {
		for _, h := range day.Hours {
			rows = append(rows, domain.OrderForecast{
				StoreID: storeID, Date: h.Date, Hour: h.Hour, PredictedOrders: h.Predicted,
			})
		}
	}
	return s.forecasts.SaveForecasts(storeID, week.WeekStart, rows)
}

// UpdateActuals records an observed order count against an existing forecast row.
func (s *Service) UpdateActuals(storeID int64, date time.Time, hour int, actual float64) (bool, error) {
	if hour < 0 || hour > 23 {
		return false, domain.NewError(domain.KindInputInvalid, "hour out of range", domain.ErrHourOutOfRange)
	}
	if actual < 0 {
		return false, domain.NewError(domain.KindInputInvalid, "actual order count cannot be negative", domain.ErrNegativeOrderCount)
	}
	return s.forecasts.UpdateActual(storeID, date, hour, actual)
}

// GetForecastAccuracy reports MAE/MAPE/bias/rating over [start, end].
func (s *Service) GetForecastAccuracy(storeID int64, start, end time.Time) (Accuracy, error) {
	rows, err := s.forecasts.ForecastsWithActuals(storeID, start, end)
	if err != nil {
		return Accuracy{}, err
	}
	return ComputeAccuracy(rows), nil
}
