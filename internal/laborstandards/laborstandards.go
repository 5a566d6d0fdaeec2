// Package laborstandards implements the Labor-Standards Bridge (C1): the
// pure translation from predicted order volume to required picker-hours.
package laborstandards

import (
	"math"
	"sort"
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
	"github.com/pickfloor/scheduler/internal/forecast"
)

// Bridge converts forecasts into staffing requirements using a store's
// per-store productivity (orders/picker-hour).
type Bridge struct {
	stores    domain.StoreRepository
	forecasts *forecast.Service
}

// NewBridge constructs a Bridge over store and forecast readers.
func NewBridge(stores domain.StoreRepository, forecasts *forecast.Service) *Bridge {
	return &Bridge{stores: stores, forecasts: forecasts}
}

// WeeklySummary reports total/average/peak staffing requirements over a week.
type WeeklySummary struct {
	Total     float64
	AvgDaily  float64
	PeakDay   int // 0=Monday..6=Sunday
	PeakHour  int
}

// StaffingEstimate reports a single day's requirement along with shift-count
// conversions at the two elapsed-hour templates the optimizer uses.
type StaffingEstimate struct {
	RequiredHours    float64
	PickersAt8Hour   float64
	PickersAt9Hour   float64
	PeakHours        []int
	HourlyBreakdown  map[int]float64
}

// round2 rounds to 2 decimal places, matching §4.1's "rounded to 2 decimals".
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// HourlyRequirements converts one day's forecast into required picker-hours
// per operating hour. The day's forecast is always computed on the fly from
// history (ensemble method); persisted forecast rows are not read (§4.1).
func (b *Bridge) HourlyRequirements(storeID int64, date time.Time) (map[int]float64, error) {
	standard, err := b.stores.GetLaborStandard(storeID)
	if err != nil {
		return nil, domain.NewError(domain.KindNotFound, "store productivity not configured", domain.ErrStoreNotFound)
	}
	if standard.OrdersPerPickerHour <= 0 {
		return nil, domain.NewError(domain.KindNotFound, "store productivity not configured", domain.ErrStoreNotFound)
	}

	day, err := b.forecasts.ForecastDay(storeID, date, forecast.Ensemble)
	if err != nil {
		return nil, err
	}

	out := make(map[int]float64, len(day.Hours))
	for _, h := range day.Hours {
		out[h.Hour] = round2(h.Predicted / standard.OrdersPerPickerHour)
	}
	return out, nil
}

// WeeklySummaryFor aggregates HourlyRequirements over seven days starting monday.
func (b *Bridge) WeeklySummaryFor(storeID int64, monday time.Time) (WeeklySummary, error) {
	var total float64
	var peakVal = -1.0
	var summary WeeklySummary

	for d := 0; d < 7; d++ {
		date := monday.AddDate(0, 0, d)
		hourly, err := b.HourlyRequirements(storeID, date)
		if err != nil {
			return WeeklySummary{}, err
		}
		for hour, req := range hourly {
			total += req
			if req > peakVal {
				peakVal = req
				summary.PeakDay = d
				summary.PeakHour = hour
			}
		}
	}
	summary.Total = round2(total)
	summary.AvgDaily = round2(total / 7)
	return summary, nil
}

// EstimateStaffingForDay reports the day's required hours and the pickers
// needed if staffed entirely with 8-hour or 9-hour elapsed shifts.
func (b *Bridge) EstimateStaffingForDay(storeID int64, date time.Time) (StaffingEstimate, error) {
	hourly, err := b.HourlyRequirements(storeID, date)
	if err != nil {
		return StaffingEstimate{}, err
	}

	var total float64
	hours := make([]int, 0, len(hourly))
	for hour, req := range hourly {
		total += req
		hours = append(hours, hour)
	}
	sort.Slice(hours, func(i, j int) bool {
		if hourly[hours[i]] != hourly[hours[j]] {
			return hourly[hours[i]] > hourly[hours[j]]
		}
		return hours[i] < hours[j]
	})
	if len(hours) > 3 {
		hours = hours[:3]
	}

	return StaffingEstimate{
		RequiredHours:   round2(total),
		PickersAt8Hour:  float64(pickersNeeded(total, 8)),
		PickersAt9Hour:  float64(pickersNeeded(total, 9)),
		PeakHours:       hours,
		HourlyBreakdown: hourly,
	}, nil
}

// pickersNeeded is the minimum headcount to cover requiredHours at the given
// elapsed shift length: the number of shifts, ceiling-rounded, not a
// fractional hours/shift-length ratio.
func pickersNeeded(requiredHours float64, shiftLength float64) int {
	if requiredHours <= 0 {
		return 0
	}
	return int(math.Ceil(requiredHours / shiftLength))
}
