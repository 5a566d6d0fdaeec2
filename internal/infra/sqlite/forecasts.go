package sqlite

import (
	"database/sql"
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
)

// SaveForecasts replaces all forecast rows for (store, week) in one
// transaction: delete the week's existing rows, then insert the new set.
// Mirrors apply_schedule's delete-and-reinsert idiom (§5) applied to forecasts.
func (db *DB) SaveForecasts(storeID int64, weekStart time.Time, forecasts []domain.OrderForecast) (int, error) {
	weekEnd := weekStart.AddDate(0, 0, 6)
	err := db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			DELETE FROM order_forecasts WHERE store_id = ? AND date >= ? AND date <= ?
		`, storeID, weekStart.Format(dateLayout), weekEnd.Format(dateLayout)); err != nil {
			return err
		}
		stmt, err := tx.Prepare(`
			INSERT INTO order_forecasts (store_id, date, hour, predicted_orders, actual_orders)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, f := range forecasts {
			if _, err := stmt.Exec(f.StoreID, f.Date.Format(dateLayout), f.Hour, f.PredictedOrders, f.ActualOrders); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(forecasts), nil
}

// ForecastsForDay returns every forecast row for a single civil date.
func (db *DB) ForecastsForDay(storeID int64, date time.Time) ([]domain.OrderForecast, error) {
	rows, err := db.db.Query(`
		SELECT store_id, date, hour, predicted_orders, actual_orders
		FROM order_forecasts WHERE store_id = ? AND date = ? ORDER BY hour
	`, storeID, date.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanForecasts(rows)
}

// ForecastsForWeek returns every forecast row for the civil week starting weekStart.
func (db *DB) ForecastsForWeek(storeID int64, weekStart time.Time) ([]domain.OrderForecast, error) {
	weekEnd := weekStart.AddDate(0, 0, 6)
	rows, err := db.db.Query(`
		SELECT store_id, date, hour, predicted_orders, actual_orders
		FROM order_forecasts WHERE store_id = ? AND date >= ? AND date <= ? ORDER BY date, hour
	`, storeID, weekStart.Format(dateLayout), weekEnd.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanForecasts(rows)
}

// ForecastsWithActuals returns forecast rows in [start, end] that have an
// observed actual recorded, used by the forecast-accuracy report.
func (db *DB) ForecastsWithActuals(storeID int64, start, end time.Time) ([]domain.OrderForecast, error) {
	rows, err := db.db.Query(`
		SELECT store_id, date, hour, predicted_orders, actual_orders
		FROM order_forecasts
		WHERE store_id = ? AND date >= ? AND date <= ? AND actual_orders IS NOT NULL
		ORDER BY date, hour
	`, storeID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanForecasts(rows)
}

// UpdateActual records the observed order count for a (store, date, hour)
// forecast. Returns false if no matching forecast row exists.
func (db *DB) UpdateActual(storeID int64, date time.Time, hour int, actual float64) (bool, error) {
	res, err := db.db.Exec(`
		UPDATE order_forecasts SET actual_orders = ? WHERE store_id = ? AND date = ? AND hour = ?
	`, actual, storeID, date.Format(dateLayout), hour)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func scanForecasts(rows *sql.Rows) ([]domain.OrderForecast, error) {
	var out []domain.OrderForecast
	for rows.Next() {
		var f domain.OrderForecast
		var date string
		var actual sql.NullFloat64
		if err := rows.Scan(&f.StoreID, &date, &f.Hour, &f.PredictedOrders, &actual); err != nil {
			return nil, err
		}
		var err error
		if f.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, err
		}
		if actual.Valid {
			v := actual.Float64
			f.ActualOrders = &v
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
