package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
)

// CreateSwap inserts a new pending swap request and returns its id.
func (db *DB) CreateSwap(s domain.Swap) (int64, error) {
	if s.Status == "" {
		s.Status = domain.SwapPending
	}
	if s.CreatedAt.IsZero() {
		return 0, fmt.Errorf("sqlite: CreateSwap requires CreatedAt")
	}
	res, err := db.db.Exec(`
		INSERT INTO swaps (requester_shift_id, accepter_shift_id, status, approved_by, approved_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.RequesterShiftID, s.AccepterShiftID, s.Status, s.ApprovedBy, formatOptionalTime(s.ApprovedAt), s.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetSwap retrieves a swap by id.
func (db *DB) GetSwap(swapID int64) (*domain.Swap, error) {
	row := db.db.QueryRow(`
		SELECT id, requester_shift_id, accepter_shift_id, status, approved_by, approved_at, created_at
		FROM swaps WHERE id = ?
	`, swapID)
	s, err := scanSwap(row)
	if err == sql.ErrNoRows {
		return nil, domain.NewError(domain.KindNotFound, fmt.Sprintf("swap %d", swapID), domain.ErrSwapNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// OpenSwapForShift returns the pending or accepted swap that names
// shiftID as its requester shift, if one exists (enforces "at most one
// open swap per shift", §4.5).
func (db *DB) OpenSwapForShift(shiftID int64) (*domain.Swap, error) {
	row := db.db.QueryRow(`
		SELECT id, requester_shift_id, accepter_shift_id, status, approved_by, approved_at, created_at
		FROM swaps WHERE requester_shift_id = ? AND status IN (?, ?)
		ORDER BY id DESC LIMIT 1
	`, shiftID, domain.SwapPending, domain.SwapAccepted)
	s, err := scanSwap(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateSwap persists every mutable field of a swap (accept/approve/deny/cancel).
func (db *DB) UpdateSwap(s domain.Swap) error {
	_, err := db.db.Exec(`
		UPDATE swaps SET accepter_shift_id = ?, status = ?, approved_by = ?, approved_at = ?
		WHERE id = ?
	`, s.AccepterShiftID, s.Status, s.ApprovedBy, formatOptionalTime(s.ApprovedAt), s.ID)
	return err
}

func formatOptionalTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func scanSwap(row *sql.Row) (*domain.Swap, error) {
	var s domain.Swap
	var accepterShiftID sql.NullInt64
	var approvedAt sql.NullString
	var createdAt string
	if err := row.Scan(&s.ID, &s.RequesterShiftID, &accepterShiftID, &s.Status, &s.ApprovedBy, &approvedAt, &createdAt); err != nil {
		return nil, err
	}
	if accepterShiftID.Valid {
		v := accepterShiftID.Int64
		s.AccepterShiftID = &v
	}
	var err error
	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		t, err := time.Parse(time.RFC3339, approvedAt.String)
		if err != nil {
			return nil, err
		}
		s.ApprovedAt = &t
	}
	return &s, nil
}
