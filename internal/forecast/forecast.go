// Package forecast implements the Demand Forecaster (C2): turning historical
// order counts into per-hour predictions. The bucketing-by-(day_of_week,hour)
// and the exponential-smoothing method are grounded on the teacher's
// autoscale.Scaler (predictive auto-scaling via smoothed level + seasonal
// index), adapted here from a single running level to independent per-bucket
// statistics since each (day, hour) bucket is forecast once per week rather
// than continuously smoothed in real time.
package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
)

// Method selects the prediction algorithm.
type Method string

const (
	SimpleAverage        Method = "simple_average"
	WeightedAverage      Method = "weighted_average"
	ExponentialSmoothing Method = "exponential_smoothing"
	Ensemble             Method = "ensemble"
	DefaultPattern       Method = "default_pattern"
)

const (
	weightDecay      = 0.85
	smoothingAlpha   = 0.3
	fallbackMargin   = 0.30
	ensembleSimple   = 0.25
	ensembleWeighted = 0.45
	ensembleExpSmoot = 0.30
)

// HourlyForecast is one (date, hour) prediction.
type HourlyForecast struct {
	Date           time.Time
	Hour           int
	Predicted      float64
	CILow          float64
	CIHigh         float64
	Method         Method
	DataPointsUsed int
}

// DailyForecast is a day's worth of hourly predictions.
type DailyForecast struct {
	StoreID  int64
	Date     time.Time
	Method   Method
	Hours    []HourlyForecast
	PeakHour int
	Warnings []string
}

// WeeklyForecast is seven days of hourly predictions.
type WeeklyForecast struct {
	StoreID   int64
	WeekStart time.Time
	Method    Method
	Days      []DailyForecast
	Warnings  []string
}

// Accuracy summarizes forecast-vs-actual error over a date range.
type Accuracy struct {
	MAE    float64
	MAPE   float64
	Bias   float64
	Rating string
}

// bucket is the sample pool for one (day_of_week, hour) key.
type bucket struct {
	values []float64
	dates  []time.Time
}

// Forecaster produces predictions from historical order data.
type Forecaster struct {
	orders domain.HistoricalOrderRepository
}

// NewForecaster constructs a Forecaster over a historical-order reader.
func NewForecaster(orders domain.HistoricalOrderRepository) *Forecaster {
	return &Forecaster{orders: orders}
}

// ForecastDay produces predictions for every hour in [operatingStart, operatingEnd)
// on the given date, using method and lookbackWeeks of history.
func (f *Forecaster) ForecastDay(storeID int64, date time.Time, method Method, lookbackWeeks, operatingStart, operatingEnd int) (DailyForecast, error) {
	date = domain.CivilDate(date)
	history, err := f.orders.HistoricalOrders(storeID, lookbackWeeks, date)
	if err != nil {
		return DailyForecast{}, err
	}
	buckets := bucketize(history)

	out := DailyForecast{StoreID: storeID, Date: date, Method: method}
	best := -1.0
	for h := operatingStart; h < operatingEnd; h++ {
		hf := f.forecastHour(buckets, date, h, method)
		out.Hours = append(out.Hours, hf)
		if hf.Predicted > best {
			best = hf.Predicted
			out.PeakHour = h
		}
		if hf.DataPointsUsed < 3 {
			out.Warnings = append(out.Warnings, warnLowData(h))
		}
	}
	return out, nil
}

// ForecastWeek produces a DailyForecast for each of the seven days starting weekStart.
func (f *Forecaster) ForecastWeek(storeID int64, weekStart time.Time, method Method, lookbackWeeks, operatingStart, operatingEnd int) (WeeklyForecast, error) {
	weekStart = domain.WeekStart(weekStart)
	out := WeeklyForecast{StoreID: storeID, WeekStart: weekStart, Method: method}
	for d := 0; d < 7; d++ {
		day, err := f.ForecastDay(storeID, weekStart.AddDate(0, 0, d), method, lookbackWeeks, operatingStart, operatingEnd)
		if err != nil {
			return WeeklyForecast{}, err
		}
		out.Days = append(out.Days, day)
		out.Warnings = append(out.Warnings, day.Warnings...)
	}
	return out, nil
}

// forecastHour dispatches to the configured method, or the cold-start
// default pattern when the bucket has no samples.
func (f *Forecaster) forecastHour(buckets map[bucketKey]bucket, date time.Time, hour int, method Method) HourlyForecast {
	key := bucketKey{dayOfWeek: domain.DayOfWeek(date), hour: hour}
	b, ok := buckets[key]
	if !ok || len(b.values) == 0 {
		return defaultPatternHour(date, hour)
	}

	switch method {
	case WeightedAverage:
		return weightedAverageHour(b, date, hour)
	case ExponentialSmoothing:
		return exponentialSmoothingHour(b, date, hour)
	case Ensemble:
		return ensembleHour(b, date, hour)
	default:
		return simpleAverageHour(b, date, hour)
	}
}

type bucketKey struct {
	dayOfWeek int
	hour      int
}

// bucketize groups historical rows by (day_of_week, hour), computing
// day_of_week from the row's date when it is not set.
func bucketize(history []domain.HistoricalOrder) map[bucketKey]bucket {
	buckets := make(map[bucketKey]bucket)
	for _, h := range history {
		dow := domain.DayOfWeek(h.Date)
		if h.DayOfWeek != nil {
			dow = *h.DayOfWeek
		}
		key := bucketKey{dayOfWeek: dow, hour: h.Hour}
		b := buckets[key]
		b.values = append(b.values, h.OrderCount)
		b.dates = append(b.dates, h.Date)
		buckets[key] = b
	}
	return buckets
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func simpleAverageHour(b bucket, date time.Time, hour int) HourlyForecast {
	mu := mean(b.values)
	n := len(b.values)

	var margin float64
	if n == 1 {
		margin = fallbackMargin * mu
	} else {
		var sumSq float64
		for _, v := range b.values {
			sumSq += (v - mu) * (v - mu)
		}
		variance := sumSq / float64(n-1)
		stdErr := math.Sqrt(variance) / math.Sqrt(float64(n))
		margin = 1.96 * stdErr
	}

	return HourlyForecast{
		Date: date, Hour: hour, Predicted: mu,
		CILow: clampNonNegative(mu - margin), CIHigh: mu + margin,
		Method: SimpleAverage, DataPointsUsed: n,
	}
}

func weightedAverageHour(b bucket, date time.Time, hour int) HourlyForecast {
	target := domain.CivilDate(date)
	var sumW, sumWV float64
	weights := make([]float64, len(b.values))
	for i, d := range b.dates {
		weeksAgo := math.Round(target.Sub(domain.CivilDate(d)).Hours() / (24 * 7))
		if weeksAgo < 0 {
			weeksAgo = 0
		}
		w := math.Pow(weightDecay, weeksAgo)
		weights[i] = w
		sumW += w
		sumWV += w * b.values[i]
	}
	if sumW == 0 {
		return simpleAverageHour(b, date, hour)
	}
	mu := sumWV / sumW

	var sumWDevSq float64
	for i, v := range b.values {
		sumWDevSq += weights[i] * (v - mu) * (v - mu)
	}
	variance := sumWDevSq / sumW
	margin := 1.96 * math.Sqrt(variance)
	if len(b.values) == 1 {
		margin = fallbackMargin * mu
	}

	return HourlyForecast{
		Date: date, Hour: hour, Predicted: mu,
		CILow: clampNonNegative(mu - margin), CIHigh: mu + margin,
		Method: WeightedAverage, DataPointsUsed: len(b.values),
	}
}

func exponentialSmoothingHour(b bucket, date time.Time, hour int) HourlyForecast {
	idx := make([]int, len(b.values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return b.dates[idx[i]].Before(b.dates[idx[j]]) })

	var level float64
	var residuals []float64
	for pos, i := range idx {
		v := b.values[i]
		if pos == 0 {
			level = v
			continue
		}
		residuals = append(residuals, math.Abs(v-level))
		level = smoothingAlpha*v + (1-smoothingAlpha)*level
	}

	var margin float64
	if len(residuals) > 0 {
		margin = 1.96 * mean(residuals)
	} else {
		margin = fallbackMargin * level
	}

	return HourlyForecast{
		Date: date, Hour: hour, Predicted: level,
		CILow: clampNonNegative(level - margin), CIHigh: level + margin,
		Method: ExponentialSmoothing, DataPointsUsed: len(b.values),
	}
}

func ensembleHour(b bucket, date time.Time, hour int) HourlyForecast {
	simple := simpleAverageHour(b, date, hour)
	weighted := weightedAverageHour(b, date, hour)
	expSmooth := exponentialSmoothingHour(b, date, hour)

	point := ensembleSimple*simple.Predicted + ensembleWeighted*weighted.Predicted + ensembleExpSmoot*expSmooth.Predicted
	low := math.Min(simple.CILow, math.Min(weighted.CILow, expSmooth.CILow))
	high := math.Max(simple.CIHigh, math.Max(weighted.CIHigh, expSmooth.CIHigh))

	return HourlyForecast{
		Date: date, Hour: hour, Predicted: point,
		CILow: low, CIHigh: high,
		Method: Ensemble, DataPointsUsed: len(b.values),
	}
}

// hourlyShare is the cold-start hourly-demand curve, summing to ~1.0 over
// the default 08:00-22:00 operating window and peaking at noon.
var hourlyShare = map[int]float64{
	8: 0.04, 9: 0.05, 10: 0.06, 11: 0.07, 12: 0.12, 13: 0.08,
	14: 0.07, 15: 0.06, 16: 0.07, 17: 0.08, 18: 0.09, 19: 0.08,
	20: 0.07, 21: 0.05,
}

// dayOfWeekMultiplier scales the cold-start base by day of week (0=Monday).
var dayOfWeekMultiplier = map[int]float64{
	0: 0.9,  // Monday
	4: 1.1,  // Friday
	5: 1.2,  // Saturday
	6: 0.85, // Sunday
}

const defaultBaseDailyOrders = 100.0

// defaultPatternHour synthesizes a forecast when a store has no historical
// rows at all for a (day, hour) bucket (§4.2 cold-start).
func defaultPatternHour(date time.Time, hour int) HourlyForecast {
	share, ok := hourlyShare[hour]
	if !ok {
		share = 0.05
	}
	mult := 1.0
	if m, ok := dayOfWeekMultiplier[domain.DayOfWeek(date)]; ok {
		mult = m
	}
	predicted := defaultBaseDailyOrders * mult * share
	margin := fallbackMargin * predicted

	return HourlyForecast{
		Date: date, Hour: hour, Predicted: predicted,
		CILow: clampNonNegative(predicted - margin), CIHigh: predicted + margin,
		Method: DefaultPattern, DataPointsUsed: 0,
	}
}

func warnLowData(hour int) string {
	return "hour " + time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC).Format("15:04") + " has fewer than 3 historical data points"
}

// ComputeAccuracy computes MAE/MAPE/bias and a qualitative rating over
// forecast rows that carry an observed actual.
func ComputeAccuracy(forecasts []domain.OrderForecast) Accuracy {
	var sumAbsErr, sumPctErr, sumErr float64
	var nAbs, nPct int
	for _, f := range forecasts {
		if f.ActualOrders == nil {
			continue
		}
		actual := *f.ActualOrders
		err := actual - f.PredictedOrders
		sumAbsErr += math.Abs(err)
		sumErr += err
		nAbs++
		if actual > 0 {
			sumPctErr += math.Abs(err) / actual
			nPct++
		}
	}
	var mae, mape, bias float64
	if nAbs > 0 {
		mae = sumAbsErr / float64(nAbs)
		bias = sumErr / float64(nAbs)
	}
	if nPct > 0 {
		mape = sumPctErr / float64(nPct) * 100
	}
	return Accuracy{MAE: mae, MAPE: mape, Bias: bias, Rating: rate(mape)}
}

// rate buckets a MAPE (a percentage) into a qualitative rating; the
// thresholds only make sense against a percentage error, not an absolute
// order-count error.
func rate(mape float64) string {
	switch {
	case mape < 10:
		return "excellent"
	case mape < 20:
		return "good"
	case mape < 30:
		return "fair"
	default:
		return "poor"
	}
}
