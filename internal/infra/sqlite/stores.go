package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/pickfloor/scheduler/internal/domain"
)

// GetStore retrieves a store by id.
func (db *DB) GetStore(storeID int64) (*domain.Store, error) {
	var s domain.Store
	err := db.db.QueryRow(`
		SELECT id, code, operating_start, operating_end FROM stores WHERE id = ?
	`, storeID).Scan(&s.ID, &s.Code, &s.OperatingStart, &s.OperatingEnd)
	if err == sql.ErrNoRows {
		return nil, domain.NewError(domain.KindNotFound, fmt.Sprintf("store %d", storeID), domain.ErrStoreNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetStoreByCode retrieves a store by its unique code.
func (db *DB) GetStoreByCode(code string) (*domain.Store, error) {
	var s domain.Store
	err := db.db.QueryRow(`
		SELECT id, code, operating_start, operating_end FROM stores WHERE code = ?
	`, code).Scan(&s.ID, &s.Code, &s.OperatingStart, &s.OperatingEnd)
	if err == sql.ErrNoRows {
		return nil, domain.NewError(domain.KindNotFound, fmt.Sprintf("store %q", code), domain.ErrStoreNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// InsertStore creates a new store and returns its id.
func (db *DB) InsertStore(s domain.Store) (int64, error) {
	if s.OperatingStart == 0 && s.OperatingEnd == 0 {
		s.OperatingStart = domain.DefaultOperatingStart
		s.OperatingEnd = domain.DefaultOperatingEnd
	}
	res, err := db.db.Exec(`
		INSERT INTO stores (code, operating_start, operating_end) VALUES (?, ?, ?)
	`, s.Code, s.OperatingStart, s.OperatingEnd)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetLaborStandard retrieves a store's labor standard.
func (db *DB) GetLaborStandard(storeID int64) (*domain.LaborStandard, error) {
	var l domain.LaborStandard
	l.StoreID = storeID
	err := db.db.QueryRow(`
		SELECT orders_per_picker_hour, min_shift_hours, max_shift_hours
		FROM labor_standards WHERE store_id = ?
	`, storeID).Scan(&l.OrdersPerPickerHour, &l.MinShiftHours, &l.MaxShiftHours)
	if err == sql.ErrNoRows {
		return nil, domain.NewError(domain.KindNotFound, fmt.Sprintf("labor standard for store %d", storeID), domain.ErrStoreNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpsertLaborStandard inserts or updates a store's labor standard.
func (db *DB) UpsertLaborStandard(l domain.LaborStandard) error {
	_, err := db.db.Exec(`
		INSERT INTO labor_standards (store_id, orders_per_picker_hour, min_shift_hours, max_shift_hours)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(store_id) DO UPDATE SET
			orders_per_picker_hour = excluded.orders_per_picker_hour,
			min_shift_hours        = excluded.min_shift_hours,
			max_shift_hours        = excluded.max_shift_hours
	`, l.StoreID, l.OrdersPerPickerHour, l.MinShiftHours, l.MaxShiftHours)
	return err
}
