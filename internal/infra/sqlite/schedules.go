package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
)

// GetSchedule retrieves a schedule by id.
func (db *DB) GetSchedule(scheduleID int64) (*domain.Schedule, error) {
	row := db.db.QueryRow(`
		SELECT id, store_id, week_start, status, created_by, published_at
		FROM schedules WHERE id = ?
	`, scheduleID)
	s, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, domain.NewError(domain.KindNotFound, fmt.Sprintf("schedule %d", scheduleID), domain.ErrScheduleNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetDraftSchedule returns the draft schedule for (store, week), if any.
func (db *DB) GetDraftSchedule(storeID int64, weekStart time.Time) (*domain.Schedule, error) {
	return db.getScheduleByStatus(storeID, weekStart, domain.ScheduleDraft)
}

// GetPublishedSchedule returns the published schedule for (store, week), if any.
func (db *DB) GetPublishedSchedule(storeID int64, weekStart time.Time) (*domain.Schedule, error) {
	return db.getScheduleByStatus(storeID, weekStart, domain.SchedulePublished)
}

func (db *DB) getScheduleByStatus(storeID int64, weekStart time.Time, status domain.ScheduleStatus) (*domain.Schedule, error) {
	row := db.db.QueryRow(`
		SELECT id, store_id, week_start, status, created_by, published_at
		FROM schedules WHERE store_id = ? AND week_start = ? AND status = ?
	`, storeID, weekStart.Format(dateLayout), status)
	s, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateSchedule inserts a new draft schedule and returns its id. The unique
// partial index on (store_id, week_start) WHERE status='published' enforces
// the at-most-one-published invariant at the storage layer (§5,§9); creating
// a second draft is allowed and left to the caller to dedupe.
func (db *DB) CreateSchedule(s domain.Schedule) (int64, error) {
	if s.Status == "" {
		s.Status = domain.ScheduleDraft
	}
	var publishedAt interface{}
	if s.PublishedAt != nil {
		publishedAt = s.PublishedAt.Format(time.RFC3339)
	}
	res, err := db.db.Exec(`
		INSERT INTO schedules (store_id, week_start, status, created_by, published_at)
		VALUES (?, ?, ?, ?, ?)
	`, s.StoreID, s.WeekStart.Format(dateLayout), s.Status, s.CreatedBy, publishedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateScheduleStatus transitions a schedule's status, optionally stamping
// published_at. A violation of the unique partial published index surfaces
// as a raw driver error; callers are expected to have already checked for
// an existing published schedule before calling this (§5.2 publish flow).
func (db *DB) UpdateScheduleStatus(scheduleID int64, status domain.ScheduleStatus, publishedAt *time.Time) error {
	var pub interface{}
	if publishedAt != nil {
		pub = publishedAt.Format(time.RFC3339)
	}
	_, err := db.db.Exec(`UPDATE schedules SET status = ?, published_at = ? WHERE id = ?`, status, pub, scheduleID)
	return err
}

// DeleteSchedule removes a schedule and its shifts.
func (db *DB) DeleteSchedule(scheduleID int64) error {
	return db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM shifts WHERE schedule_id = ?`, scheduleID); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM schedules WHERE id = ?`, scheduleID)
		return err
	})
}

func scanSchedule(row *sql.Row) (*domain.Schedule, error) {
	var s domain.Schedule
	var weekStart string
	var publishedAt sql.NullString
	if err := row.Scan(&s.ID, &s.StoreID, &weekStart, &s.Status, &s.CreatedBy, &publishedAt); err != nil {
		return nil, err
	}
	var err error
	if s.WeekStart, err = time.Parse(dateLayout, weekStart); err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		t, err := time.Parse(time.RFC3339, publishedAt.String)
		if err != nil {
			return nil, err
		}
		s.PublishedAt = &t
	}
	return &s, nil
}
