package sqlite

import (
	"database/sql"
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
)

// TimeOffForDate returns the approved time-off request covering date, if any.
func (db *DB) TimeOffForDate(employeeID int64, date time.Time) (*domain.TimeOffRequest, error) {
	rows, err := db.db.Query(`
		SELECT id, employee_id, start_date, end_date, status FROM time_off_requests
		WHERE employee_id = ? AND status = ? AND start_date <= ? AND end_date >= ?
		ORDER BY id LIMIT 1
	`, employeeID, domain.TimeOffApproved, date.Format(dateLayout), date.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	t, err := scanTimeOff(rows)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ApprovedTimeOffInRange returns every approved request overlapping [start, end].
func (db *DB) ApprovedTimeOffInRange(employeeID int64, start, end time.Time) ([]domain.TimeOffRequest, error) {
	rows, err := db.db.Query(`
		SELECT id, employee_id, start_date, end_date, status FROM time_off_requests
		WHERE employee_id = ? AND status = ? AND start_date <= ? AND end_date >= ?
		ORDER BY start_date
	`, employeeID, domain.TimeOffApproved, end.Format(dateLayout), start.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TimeOffRequest
	for rows.Next() {
		t, err := scanTimeOff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// InsertTimeOffRequest creates a new request and returns its id.
func (db *DB) InsertTimeOffRequest(t domain.TimeOffRequest) (int64, error) {
	if t.Status == "" {
		t.Status = domain.TimeOffPending
	}
	res, err := db.db.Exec(`
		INSERT INTO time_off_requests (employee_id, start_date, end_date, status)
		VALUES (?, ?, ?, ?)
	`, t.EmployeeID, t.StartDate.Format(dateLayout), t.EndDate.Format(dateLayout), t.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateTimeOffStatus transitions a request's approval status.
func (db *DB) UpdateTimeOffStatus(requestID int64, status domain.TimeOffStatus) error {
	_, err := db.db.Exec(`UPDATE time_off_requests SET status = ? WHERE id = ?`, status, requestID)
	return err
}

func scanTimeOff(rows *sql.Rows) (domain.TimeOffRequest, error) {
	var t domain.TimeOffRequest
	var start, end string
	if err := rows.Scan(&t.ID, &t.EmployeeID, &start, &end, &t.Status); err != nil {
		return domain.TimeOffRequest{}, err
	}
	var err error
	if t.StartDate, err = time.Parse(dateLayout, start); err != nil {
		return domain.TimeOffRequest{}, err
	}
	if t.EndDate, err = time.Parse(dateLayout, end); err != nil {
		return domain.TimeOffRequest{}, err
	}
	return t, nil
}
