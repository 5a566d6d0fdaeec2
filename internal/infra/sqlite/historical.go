package sqlite

import (
	"database/sql"
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
)

// HistoricalOrders returns observed order counts for a store over the
// lookbackWeeks weeks preceding `before`, ordered by date then hour.
func (db *DB) HistoricalOrders(storeID int64, lookbackWeeks int, before time.Time) ([]domain.HistoricalOrder, error) {
	since := domain.CivilDate(before).AddDate(0, 0, -7*lookbackWeeks)
	rows, err := db.db.Query(`
		SELECT store_id, date, hour, order_count, day_of_week, is_holiday
		FROM historical_orders
		WHERE store_id = ? AND date >= ? AND date < ?
		ORDER BY date, hour
	`, storeID, since.Format(dateLayout), before.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HistoricalOrder
	for rows.Next() {
		var h domain.HistoricalOrder
		var date string
		var dayOfWeek sql.NullInt64
		var isHoliday int
		if err := rows.Scan(&h.StoreID, &date, &h.Hour, &h.OrderCount, &dayOfWeek, &isHoliday); err != nil {
			return nil, err
		}
		if h.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, err
		}
		if dayOfWeek.Valid {
			v := int(dayOfWeek.Int64)
			h.DayOfWeek = &v
		}
		h.IsHoliday = isHoliday != 0
		out = append(out, h)
	}
	return out, rows.Err()
}

// InsertHistoricalOrder upserts one observed (store, date, hour) order count.
func (db *DB) InsertHistoricalOrder(h domain.HistoricalOrder) error {
	_, err := db.db.Exec(`
		INSERT INTO historical_orders (store_id, date, hour, order_count, day_of_week, is_holiday)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(store_id, date, hour) DO UPDATE SET
			order_count = excluded.order_count,
			day_of_week = excluded.day_of_week,
			is_holiday  = excluded.is_holiday
	`, h.StoreID, h.Date.Format(dateLayout), h.Hour, h.OrderCount, h.DayOfWeek, boolToInt(h.IsHoliday))
	return err
}
