package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
)

// ShiftsForSchedule returns every shift belonging to a schedule.
func (db *DB) ShiftsForSchedule(scheduleID int64) ([]domain.Shift, error) {
	rows, err := db.db.Query(`
		SELECT id, schedule_id, employee_id, date, start_time, end_time, break_minutes,
		       status, original_employee_id, covered_by_id, callout_reason, callout_time
		FROM shifts WHERE schedule_id = ? ORDER BY date, start_time
	`, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShifts(rows)
}

// ShiftsInWeek returns an employee's shifts whose date falls within the
// civil week starting weekStart. Implements the ComplianceReader trait.
func (db *DB) ShiftsInWeek(employeeID int64, weekStart time.Time) ([]domain.Shift, error) {
	weekEnd := weekStart.AddDate(0, 0, 6)
	rows, err := db.db.Query(`
		SELECT id, schedule_id, employee_id, date, start_time, end_time, break_minutes,
		       status, original_employee_id, covered_by_id, callout_reason, callout_time
		FROM shifts
		WHERE employee_id = ? AND date >= ? AND date <= ?
		ORDER BY date, start_time
	`, employeeID, weekStart.Format(dateLayout), weekEnd.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShifts(rows)
}

// GetShift retrieves a shift by id.
func (db *DB) GetShift(shiftID int64) (*domain.Shift, error) {
	rows, err := db.db.Query(`
		SELECT id, schedule_id, employee_id, date, start_time, end_time, break_minutes,
		       status, original_employee_id, covered_by_id, callout_reason, callout_time
		FROM shifts WHERE id = ?
	`, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	shifts, err := scanShifts(rows)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, domain.NewError(domain.KindNotFound, fmt.Sprintf("shift %d", shiftID), domain.ErrShiftNotFound)
	}
	return &shifts[0], nil
}

// InsertShift creates a new shift and returns its id.
func (db *DB) InsertShift(s domain.Shift) (int64, error) {
	if s.Status == "" {
		s.Status = domain.ShiftScheduled
	}
	var calloutTime interface{}
	if s.CalloutTime != nil {
		calloutTime = s.CalloutTime.Format(time.RFC3339)
	}
	res, err := db.db.Exec(`
		INSERT INTO shifts (schedule_id, employee_id, date, start_time, end_time, break_minutes,
		                     status, original_employee_id, covered_by_id, callout_reason, callout_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ScheduleID, s.EmployeeID, s.Date.Format(dateLayout), s.StartTime, s.EndTime, s.BreakMinutes,
		s.Status, s.OriginalEmployeeID, s.CoveredByID, s.CalloutReason, calloutTime)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateShift persists every mutable field of a shift (used by call-out,
// replacement assignment, revert, and swap execution).
func (db *DB) UpdateShift(s domain.Shift) error {
	var calloutTime interface{}
	if s.CalloutTime != nil {
		calloutTime = s.CalloutTime.Format(time.RFC3339)
	}
	_, err := db.db.Exec(`
		UPDATE shifts SET
			employee_id = ?, date = ?, start_time = ?, end_time = ?, break_minutes = ?,
			status = ?, original_employee_id = ?, covered_by_id = ?, callout_reason = ?, callout_time = ?
		WHERE id = ?
	`, s.EmployeeID, s.Date.Format(dateLayout), s.StartTime, s.EndTime, s.BreakMinutes,
		s.Status, s.OriginalEmployeeID, s.CoveredByID, s.CalloutReason, calloutTime, s.ID)
	return err
}

// DeleteShiftsForSchedule removes every shift under a schedule in a single
// statement outside any transaction. apply_schedule does not call it:
// ReplaceShifts issues its own DELETE inside its transaction.
func (db *DB) DeleteShiftsForSchedule(scheduleID int64) error {
	_, err := db.db.Exec(`DELETE FROM shifts WHERE schedule_id = ?`, scheduleID)
	return err
}

// ReplaceShifts atomically deletes every existing shift under scheduleID
// and inserts the replacement set, so apply_schedule never observes a
// partially-deleted or partially-inserted schedule (§5).
func (db *DB) ReplaceShifts(scheduleID int64, shifts []domain.Shift) ([]domain.Shift, error) {
	out := make([]domain.Shift, len(shifts))
	copy(out, shifts)

	err := db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM shifts WHERE schedule_id = ?`, scheduleID); err != nil {
			return err
		}
		for i, s := range out {
			if s.Status == "" {
				s.Status = domain.ShiftScheduled
			}
			var calloutTime interface{}
			if s.CalloutTime != nil {
				calloutTime = s.CalloutTime.Format(time.RFC3339)
			}
			res, err := tx.Exec(`
				INSERT INTO shifts (schedule_id, employee_id, date, start_time, end_time, break_minutes,
				                     status, original_employee_id, covered_by_id, callout_reason, callout_time)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, scheduleID, s.EmployeeID, s.Date.Format(dateLayout), s.StartTime, s.EndTime, s.BreakMinutes,
				s.Status, s.OriginalEmployeeID, s.CoveredByID, s.CalloutReason, calloutTime)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			out[i].ID = id
			out[i].ScheduleID = scheduleID
			out[i].Status = s.Status
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExchangeShiftEmployees atomically swaps the employee_id fields of two
// shifts, so swap approval never observes one shift reassigned without the
// other (§4.5).
func (db *DB) ExchangeShiftEmployees(shiftAID, shiftBID int64) (domain.Shift, domain.Shift, error) {
	var a, b domain.Shift
	err := db.WithTx(func(tx *sql.Tx) error {
		var err error
		a, err = txGetShift(tx, shiftAID)
		if err != nil {
			return err
		}
		b, err = txGetShift(tx, shiftBID)
		if err != nil {
			return err
		}
		a.EmployeeID, b.EmployeeID = b.EmployeeID, a.EmployeeID
		if _, err := tx.Exec(`UPDATE shifts SET employee_id = ? WHERE id = ?`, a.EmployeeID, a.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(`UPDATE shifts SET employee_id = ? WHERE id = ?`, b.EmployeeID, b.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Shift{}, domain.Shift{}, err
	}
	return a, b, nil
}

func txGetShift(tx *sql.Tx, shiftID int64) (domain.Shift, error) {
	rows, err := tx.Query(`
		SELECT id, schedule_id, employee_id, date, start_time, end_time, break_minutes,
		       status, original_employee_id, covered_by_id, callout_reason, callout_time
		FROM shifts WHERE id = ?
	`, shiftID)
	if err != nil {
		return domain.Shift{}, err
	}
	defer rows.Close()
	shifts, err := scanShifts(rows)
	if err != nil {
		return domain.Shift{}, err
	}
	if len(shifts) == 0 {
		return domain.Shift{}, domain.NewError(domain.KindNotFound, fmt.Sprintf("shift %d", shiftID), domain.ErrShiftNotFound)
	}
	return shifts[0], nil
}

func scanShifts(rows *sql.Rows) ([]domain.Shift, error) {
	var out []domain.Shift
	for rows.Next() {
		var s domain.Shift
		var date string
		var originalEmployeeID, coveredByID sql.NullInt64
		var calloutTime sql.NullString
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.EmployeeID, &date, &s.StartTime, &s.EndTime,
			&s.BreakMinutes, &s.Status, &originalEmployeeID, &coveredByID, &s.CalloutReason, &calloutTime); err != nil {
			return nil, err
		}
		var err error
		if s.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, err
		}
		if originalEmployeeID.Valid {
			v := originalEmployeeID.Int64
			s.OriginalEmployeeID = &v
		}
		if coveredByID.Valid {
			v := coveredByID.Int64
			s.CoveredByID = &v
		}
		if calloutTime.Valid {
			t, err := time.Parse(time.RFC3339, calloutTime.String)
			if err != nil {
				return nil, err
			}
			s.CalloutTime = &t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
