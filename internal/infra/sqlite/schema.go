package sqlite

// Migrations returns the ordered schema migration statements. Each string
// is a single SQL statement (SQLite executes one at a time), matching the
// teacher's Phase3Migrations/Phase4Migrations shape.
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS stores (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			code            TEXT NOT NULL UNIQUE,
			operating_start INTEGER NOT NULL DEFAULT 8,
			operating_end   INTEGER NOT NULL DEFAULT 22
		)`,

		`CREATE TABLE IF NOT EXISTS labor_standards (
			store_id               INTEGER PRIMARY KEY,
			orders_per_picker_hour REAL NOT NULL DEFAULT 10,
			min_shift_hours        REAL NOT NULL DEFAULT 4,
			max_shift_hours        REAL NOT NULL DEFAULT 8
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_labor_standards_store ON labor_standards(store_id)`,

		`CREATE TABLE IF NOT EXISTS employees (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			store_id   INTEGER NOT NULL,
			name       TEXT NOT NULL,
			status     TEXT NOT NULL DEFAULT 'active',
			hire_date  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_employees_store ON employees(store_id)`,

		`CREATE TABLE IF NOT EXISTS availability (
			employee_id     INTEGER NOT NULL,
			day_of_week     INTEGER NOT NULL,
			is_available    INTEGER NOT NULL DEFAULT 1,
			preferred_start INTEGER,
			preferred_end   INTEGER,
			PRIMARY KEY (employee_id, day_of_week)
		)`,

		`CREATE TABLE IF NOT EXISTS time_off_requests (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			employee_id INTEGER NOT NULL,
			start_date  TEXT NOT NULL,
			end_date    TEXT NOT NULL,
			status      TEXT NOT NULL DEFAULT 'pending'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_timeoff_employee ON time_off_requests(employee_id, status)`,

		`CREATE TABLE IF NOT EXISTS schedules (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			store_id     INTEGER NOT NULL,
			week_start   TEXT NOT NULL,
			status       TEXT NOT NULL DEFAULT 'draft',
			created_by   TEXT NOT NULL DEFAULT '',
			published_at TEXT
		)`,
		// At most one published schedule per (store, week_start) — §5,§9.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_schedules_published_unique
			ON schedules(store_id, week_start) WHERE status = 'published'`,
		`CREATE INDEX IF NOT EXISTS idx_schedules_store_week ON schedules(store_id, week_start)`,

		`CREATE TABLE IF NOT EXISTS shifts (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			schedule_id          INTEGER NOT NULL,
			employee_id          INTEGER NOT NULL,
			date                 TEXT NOT NULL,
			start_time           INTEGER NOT NULL,
			end_time             INTEGER NOT NULL,
			break_minutes        INTEGER NOT NULL DEFAULT 0,
			status               TEXT NOT NULL DEFAULT 'scheduled',
			original_employee_id INTEGER,
			covered_by_id        INTEGER,
			callout_reason       TEXT NOT NULL DEFAULT '',
			callout_time         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_shifts_schedule ON shifts(schedule_id)`,
		`CREATE INDEX IF NOT EXISTS idx_shifts_employee_date ON shifts(employee_id, date)`,

		`CREATE TABLE IF NOT EXISTS historical_orders (
			store_id    INTEGER NOT NULL,
			date        TEXT NOT NULL,
			hour        INTEGER NOT NULL,
			order_count REAL NOT NULL DEFAULT 0,
			day_of_week INTEGER,
			is_holiday  INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (store_id, date, hour)
		)`,

		`CREATE TABLE IF NOT EXISTS order_forecasts (
			store_id         INTEGER NOT NULL,
			date             TEXT NOT NULL,
			hour             INTEGER NOT NULL,
			predicted_orders REAL NOT NULL DEFAULT 0,
			actual_orders    REAL,
			PRIMARY KEY (store_id, date, hour)
		)`,

		`CREATE TABLE IF NOT EXISTS swaps (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			requester_shift_id INTEGER NOT NULL,
			accepter_shift_id  INTEGER,
			status             TEXT NOT NULL DEFAULT 'pending',
			approved_by        TEXT NOT NULL DEFAULT '',
			approved_at        TEXT,
			created_at         TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_swaps_requester_shift ON swaps(requester_shift_id, status)`,
	}
}
