package sqlite

import (
	"testing"

	"github.com/pickfloor/scheduler/internal/domain"
)

func TestHistoricalOrders_UpsertAndLookbackWindow(t *testing.T) {
	db := openTestDB(t)
	storeID, _ := db.InsertStore(domain.Store{Code: "STL01"})

	dow := 0
	if err := db.InsertHistoricalOrder(domain.HistoricalOrder{StoreID: storeID, Date: mustDate(2026, 7, 20), Hour: 9, OrderCount: 12, DayOfWeek: &dow}); err != nil {
		t.Fatalf("InsertHistoricalOrder: %v", err)
	}
	// Upsert on the same (store, date, hour) key should update, not duplicate.
	if err := db.InsertHistoricalOrder(domain.HistoricalOrder{StoreID: storeID, Date: mustDate(2026, 7, 20), Hour: 9, OrderCount: 20, DayOfWeek: &dow}); err != nil {
		t.Fatalf("InsertHistoricalOrder (update): %v", err)
	}
	// Outside the 1-week lookback before 2026-07-27.
	if err := db.InsertHistoricalOrder(domain.HistoricalOrder{StoreID: storeID, Date: mustDate(2026, 7, 1), Hour: 9, OrderCount: 99}); err != nil {
		t.Fatalf("InsertHistoricalOrder (old): %v", err)
	}

	rows, err := db.HistoricalOrders(storeID, 1, mustDate(2026, 7, 27))
	if err != nil {
		t.Fatalf("HistoricalOrders: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly 1 row within the lookback window, got %d", len(rows))
	}
	if rows[0].OrderCount != 20 {
		t.Errorf("OrderCount = %v, want 20 (updated by upsert)", rows[0].OrderCount)
	}
}

func TestForecasts_SaveReplacesWeekAndUpdateActual(t *testing.T) {
	db := openTestDB(t)
	storeID, _ := db.InsertStore(domain.Store{Code: "STL01"})
	week := mustDate(2026, 7, 27)

	n, err := db.SaveForecasts(storeID, week, []domain.OrderForecast{
		{StoreID: storeID, Date: week, Hour: 8, PredictedOrders: 10},
		{StoreID: storeID, Date: week, Hour: 9, PredictedOrders: 20},
	})
	if err != nil {
		t.Fatalf("SaveForecasts: %v", err)
	}
	if n != 2 {
		t.Errorf("SaveForecasts returned %d, want 2", n)
	}

	// A second save for the same week replaces the first set entirely.
	n, err = db.SaveForecasts(storeID, week, []domain.OrderForecast{
		{StoreID: storeID, Date: week, Hour: 10, PredictedOrders: 30},
	})
	if err != nil {
		t.Fatalf("SaveForecasts (replace): %v", err)
	}
	if n != 1 {
		t.Errorf("SaveForecasts (replace) returned %d, want 1", n)
	}

	forDay, err := db.ForecastsForDay(storeID, week)
	if err != nil || len(forDay) != 1 || forDay[0].Hour != 10 {
		t.Fatalf("expected only the replacement row for the day, got %+v, err=%v", forDay, err)
	}

	updated, err := db.UpdateActual(storeID, week, 10, 28)
	if err != nil || !updated {
		t.Fatalf("UpdateActual: updated=%v err=%v", updated, err)
	}
	missing, err := db.UpdateActual(storeID, week, 23, 5)
	if err != nil || missing {
		t.Fatalf("UpdateActual on a nonexistent row should report updated=false, got %v, err=%v", missing, err)
	}

	withActuals, err := db.ForecastsWithActuals(storeID, week, week.AddDate(0, 0, 6))
	if err != nil || len(withActuals) != 1 || withActuals[0].ActualOrders == nil || *withActuals[0].ActualOrders != 28 {
		t.Fatalf("expected the one row with an actual recorded, got %+v, err=%v", withActuals, err)
	}

	forWeek, err := db.ForecastsForWeek(storeID, week)
	if err != nil || len(forWeek) != 1 {
		t.Fatalf("ForecastsForWeek: got %d rows, err=%v", len(forWeek), err)
	}
}
