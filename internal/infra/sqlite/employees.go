package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
)

const dateLayout = "2006-01-02"

// GetEmployee retrieves an employee by id.
func (db *DB) GetEmployee(employeeID int64) (*domain.Employee, error) {
	var e domain.Employee
	var hireDate string
	err := db.db.QueryRow(`
		SELECT id, store_id, name, status, hire_date FROM employees WHERE id = ?
	`, employeeID).Scan(&e.ID, &e.StoreID, &e.Name, &e.Status, &hireDate)
	if err == sql.ErrNoRows {
		return nil, domain.NewError(domain.KindNotFound, fmt.Sprintf("employee %d", employeeID), domain.ErrEmployeeNotFound)
	}
	if err != nil {
		return nil, err
	}
	e.HireDate, err = time.Parse(dateLayout, hireDate)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EmployeeName returns the employee's name, or an empty string if unknown.
// Implements the ComplianceReader trait's lightweight name lookup.
func (db *DB) EmployeeName(employeeID int64) string {
	var name string
	if err := db.db.QueryRow(`SELECT name FROM employees WHERE id = ?`, employeeID).Scan(&name); err != nil {
		return ""
	}
	return name
}

// ListActiveEmployees returns every schedulable employee at a store.
func (db *DB) ListActiveEmployees(storeID int64) ([]domain.Employee, error) {
	rows, err := db.db.Query(`
		SELECT id, store_id, name, status, hire_date FROM employees
		WHERE store_id = ? AND status = ?
		ORDER BY id
	`, storeID, domain.EmployeeActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		var e domain.Employee
		var hireDate string
		if err := rows.Scan(&e.ID, &e.StoreID, &e.Name, &e.Status, &hireDate); err != nil {
			return nil, err
		}
		if e.HireDate, err = time.Parse(dateLayout, hireDate); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// InsertEmployee creates a new employee and returns its id.
func (db *DB) InsertEmployee(e domain.Employee) (int64, error) {
	if e.Status == "" {
		e.Status = domain.EmployeeActive
	}
	res, err := db.db.Exec(`
		INSERT INTO employees (store_id, name, status, hire_date) VALUES (?, ?, ?, ?)
	`, e.StoreID, e.Name, e.Status, e.HireDate.Format(dateLayout))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// AvailabilityFor returns the employee's preference row for a day of week,
// falling back to DefaultAvailability when none is persisted (§9).
func (db *DB) AvailabilityFor(employeeID int64, dayOfWeek int) (domain.Availability, error) {
	var a domain.Availability
	a.EmployeeID = employeeID
	a.DayOfWeek = dayOfWeek
	var isAvailable int
	var prefStart, prefEnd sql.NullInt64
	err := db.db.QueryRow(`
		SELECT is_available, preferred_start, preferred_end FROM availability
		WHERE employee_id = ? AND day_of_week = ?
	`, employeeID, dayOfWeek).Scan(&isAvailable, &prefStart, &prefEnd)
	if err == sql.ErrNoRows {
		return domain.DefaultAvailability(employeeID, dayOfWeek), nil
	}
	if err != nil {
		return domain.Availability{}, err
	}
	a.IsAvailable = isAvailable != 0
	if prefStart.Valid {
		v := int(prefStart.Int64)
		a.PreferredStart = &v
	}
	if prefEnd.Valid {
		v := int(prefEnd.Int64)
		a.PreferredEnd = &v
	}
	return a, nil
}

// UpsertAvailability inserts or replaces one (employee, day-of-week) row.
func (db *DB) UpsertAvailability(a domain.Availability) error {
	_, err := db.db.Exec(`
		INSERT INTO availability (employee_id, day_of_week, is_available, preferred_start, preferred_end)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, day_of_week) DO UPDATE SET
			is_available    = excluded.is_available,
			preferred_start = excluded.preferred_start,
			preferred_end   = excluded.preferred_end
	`, a.EmployeeID, a.DayOfWeek, boolToInt(a.IsAvailable), a.PreferredStart, a.PreferredEnd)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
