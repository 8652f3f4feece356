/*
Package sqlite provides the SQLite-backed persistence layer for the
leave workflow host application.

PURPOSE:
  Stores the entities the engine consumes as snapshots (employees, units,
  leave types, holidays) and the entities it produces (requests and
  validation records). The engine itself never touches this package; the
  API layer loads snapshots here, invokes the engine, and persists the
  outcome here.

INTERFACES IMPLEMENTED:
  engine.OrgQuery:         active unit chief lookup for escalation
  engine.HolidayCalendar:  holiday predicate for the working calendar

KEY TABLES:
  employees:       id, role, unit placement, active flag
  units:           organizational units
  leave_types:     request categories and their holiday rule
  leave_requests:  the workflow entity, status included
  validations:     append-only validator decisions (never updated)
  holidays:        fixed and yearly-recurring public holidays

APPEND-ONLY VALIDATIONS:
  No UPDATE or DELETE statements exist for the validations table, and a
  UNIQUE(request_id, level) index backs the one-record-per-level
  invariant at the storage layer too.

CONCURRENCY:
  The engine has a check-then-act race if two validators decide the same
  request concurrently. SaveDecision updates the request with a WHERE
  clause on the previous status inside a database transaction, so only
  one of two racing decisions can advance a given level; the loser gets
  ErrStaleRequest.

USAGE:
  store, err := sqlite.New("./leave.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - engine/escalation.go: OrgQuery consumer
  - engine/calendar.go:   HolidayCalendar consumer
  - api/handlers.go:      The caller of everything here
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/leave-engine/engine"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ErrNotEditable is returned when modifying or deleting a request that
// is no longer in an editable status.
var ErrNotEditable = errors.New("request is not editable")

// ErrStaleRequest is returned when the persisted status no longer
// matches the snapshot an engine operation was computed from.
var ErrStaleRequest = errors.New("request changed concurrently")

// Store implements persistence over SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a store at the given path. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS units (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		role TEXT NOT NULL,
		unit_id TEXT,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_unit_role
		ON employees(unit_id, role, active);

	CREATE TABLE IF NOT EXISTS leave_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		excludes_holidays INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		leave_type_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		start_portion TEXT NOT NULL,
		end_portion TEXT NOT NULL,
		duration_days TEXT NOT NULL DEFAULT '0',
		status TEXT NOT NULL,
		comment TEXT,
		rejection_reason TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		finalized_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_requests_owner
		ON leave_requests(owner_id, status);
	CREATE INDEX IF NOT EXISTS idx_requests_status
		ON leave_requests(status);

	-- Append-only decision trail. One row per discharged level.
	CREATE TABLE IF NOT EXISTS validations (
		id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL,
		validator_id TEXT NOT NULL,
		approved INTEGER NOT NULL,
		comment TEXT,
		level INTEGER NOT NULL,
		decided_at TEXT NOT NULL,
		UNIQUE(request_id, level)
	);

	CREATE INDEX IF NOT EXISTS idx_validations_request
		ON validations(request_id);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_date ON holidays(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// UNITS
// =============================================================================

type Unit struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
}

func (s *Store) SaveUnit(ctx context.Context, u Unit) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO units (id, name, active, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, active = excluded.active`,
		u.ID, u.Name, boolToInt(u.Active), u.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetUnit(ctx context.Context, id string) (*Unit, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, active, created_at FROM units WHERE id = ?`, id)
	var u Unit
	var active int
	var createdAt string
	if err := row.Scan(&u.ID, &u.Name, &active, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Active = active != 0
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

func (s *Store) ListUnits(ctx context.Context) ([]Unit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, active, created_at FROM units ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []Unit
	for rows.Next() {
		var u Unit
		var active int
		var createdAt string
		if err := rows.Scan(&u.ID, &u.Name, &active, &createdAt); err != nil {
			return nil, err
		}
		u.Active = active != 0
		u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		units = append(units, u)
	}
	return units, rows.Err()
}

// =============================================================================
// EMPLOYEES
// =============================================================================

type Employee struct {
	ID     string
	Name   string
	Email  string
	Role   engine.Role
	UnitID string
	Active bool

	// UnitActive is joined from the units table on load; it is not a
	// column of the employees table.
	UnitActive bool

	CreatedAt time.Time
}

// Actor returns the flat snapshot the engine consumes.
func (e *Employee) Actor() engine.Actor {
	return engine.Actor{ID: e.ID, Role: e.Role, UnitID: e.UnitID, UnitActive: e.UnitActive}
}

func (s *Store) SaveEmployee(ctx context.Context, e Employee) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, email, role, unit_id, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, email = excluded.email, role = excluded.role,
			unit_id = excluded.unit_id, active = excluded.active`,
		e.ID, e.Name, e.Email, string(e.Role), nullIfEmpty(e.UnitID),
		boolToInt(e.Active), e.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT e.id, e.name, e.email, e.role, e.unit_id, e.active, e.created_at,
		       COALESCE(u.active, 0)
		FROM employees e LEFT JOIN units u ON u.id = e.unit_id
		WHERE e.id = ?`, id)

	e, err := scanEmployee(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.name, e.email, e.role, e.unit_id, e.active, e.created_at,
		       COALESCE(u.active, 0)
		FROM employees e LEFT JOIN units u ON u.id = e.unit_id
		ORDER BY e.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

// ListValidatorsFor returns the active employees with standing at the
// given level for a requester in unitID. The host uses this to decide
// who to notify after a submission or an escalation.
func (s *Store) ListValidatorsFor(ctx context.Context, level engine.Level, unitID string) ([]Employee, error) {
	var rows *sql.Rows
	var err error
	if level == engine.LevelUnitChief {
		rows, err = s.db.QueryContext(ctx, `
			SELECT e.id, e.name, e.email, e.role, e.unit_id, e.active, e.created_at,
			       COALESCE(u.active, 0)
			FROM employees e LEFT JOIN units u ON u.id = e.unit_id
			WHERE e.role = ? AND e.unit_id = ? AND e.active = 1`,
			string(engine.RoleUnitChief), unitID)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT e.id, e.name, e.email, e.role, e.unit_id, e.active, e.created_at,
			       COALESCE(u.active, 0)
			FROM employees e LEFT JOIN units u ON u.id = e.unit_id
			WHERE e.role = ? AND e.active = 1`,
			string(engine.RoleTeamChief))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var validators []Employee
	for rows.Next() {
		e, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, err
		}
		validators = append(validators, *e)
	}
	return validators, rows.Err()
}

// HasActiveUnitChief implements engine.OrgQuery. Chiefs of a
// deactivated unit do not count.
func (s *Store) HasActiveUnitChief(ctx context.Context, unitID string, excludingUserID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM employees e
		JOIN units u ON u.id = e.unit_id
		WHERE e.role = ? AND e.unit_id = ? AND e.active = 1 AND u.active = 1 AND e.id != ?`,
		string(engine.RoleUnitChief), unitID, excludingUserID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func scanEmployee(scan func(dest ...any) error) (*Employee, error) {
	var e Employee
	var role string
	var email, unitID sql.NullString
	var active, unitActive int
	var createdAt string
	if err := scan(&e.ID, &e.Name, &email, &role, &unitID, &active, &createdAt, &unitActive); err != nil {
		return nil, err
	}
	e.Email = email.String
	e.Role = engine.Role(role)
	e.UnitID = unitID.String
	e.Active = active != 0
	e.UnitActive = unitActive != 0
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &e, nil
}

// =============================================================================
// LEAVE TYPES
// =============================================================================

type LeaveType struct {
	ID               string
	Name             string
	ExcludesHolidays bool
}

func (s *Store) SaveLeaveType(ctx context.Context, lt LeaveType) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_types (id, name, excludes_holidays) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, excludes_holidays = excluded.excludes_holidays`,
		lt.ID, lt.Name, boolToInt(lt.ExcludesHolidays))
	return err
}

func (s *Store) GetLeaveType(ctx context.Context, id string) (*LeaveType, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, excludes_holidays FROM leave_types WHERE id = ?`, id)
	var lt LeaveType
	var excludes int
	if err := row.Scan(&lt.ID, &lt.Name, &excludes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	lt.ExcludesHolidays = excludes != 0
	return &lt, nil
}

func (s *Store) ListLeaveTypes(ctx context.Context) ([]LeaveType, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, excludes_holidays FROM leave_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []LeaveType
	for rows.Next() {
		var lt LeaveType
		var excludes int
		if err := rows.Scan(&lt.ID, &lt.Name, &excludes); err != nil {
			return nil, err
		}
		lt.ExcludesHolidays = excludes != 0
		types = append(types, lt)
	}
	return types, rows.Err()
}

// =============================================================================
// HOLIDAYS
// =============================================================================

type Holiday struct {
	ID        string
	Date      engine.Date
	Name      string
	Recurring bool
}

func (s *Store) SaveHoliday(ctx context.Context, h Holiday) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO holidays (id, date, name, recurring) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date, name = excluded.name, recurring = excluded.recurring`,
		h.ID, h.Date.String(), h.Name, boolToInt(h.Recurring))
	return err
}

func (s *Store) ListHolidays(ctx context.Context) ([]Holiday, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, name, recurring FROM holidays ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []Holiday
	for rows.Next() {
		var h Holiday
		var dateStr string
		var recurring int
		if err := rows.Scan(&h.ID, &dateStr, &h.Name, &recurring); err != nil {
			return nil, err
		}
		h.Date, _ = engine.ParseDate(dateStr)
		h.Recurring = recurring != 0
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsHoliday implements engine.HolidayCalendar against the holidays table.
func (s *Store) IsHoliday(date engine.Date) bool {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM holidays
		WHERE (recurring = 0 AND date = ?)
		   OR (recurring = 1 AND substr(date, 6) = ?)`,
		date.String(), date.Time.Format("01-02")).Scan(&count)
	if err != nil {
		return false
	}
	return count > 0
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

// CreateRequest persists a new draft.
func (s *Store) CreateRequest(ctx context.Context, req *engine.LeaveRequest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_requests
			(id, owner_id, leave_type_id, start_date, end_date, start_portion,
			 end_portion, duration_days, status, comment, rejection_reason,
			 created_at, updated_at, finalized_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.OwnerID, req.LeaveTypeID,
		req.StartDate.String(), req.EndDate.String(),
		string(req.StartPortion), string(req.EndPortion),
		req.DurationDays.String(), string(req.Status),
		req.Comment, req.RejectionReason,
		req.CreatedAt.Format(time.RFC3339), req.UpdatedAt.Format(time.RFC3339),
		nullableTime(req.FinalizedAt))
	return err
}

// UpdateDraft rewrites the mutable fields of an editable request and
// returns it to Draft. Refuses to touch a request past Draft/Rejected.
// Reworking a rejection starts a fresh attempt, so the old validation
// trail is dropped with it.
func (s *Store) UpdateDraft(ctx context.Context, req *engine.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE leave_requests SET
			leave_type_id = ?, start_date = ?, end_date = ?,
			start_portion = ?, end_portion = ?, comment = ?, status = ?,
			rejection_reason = '', finalized_at = NULL, updated_at = ?
		WHERE id = ? AND status IN (?, ?)`,
		req.LeaveTypeID, req.StartDate.String(), req.EndDate.String(),
		string(req.StartPortion), string(req.EndPortion), req.Comment,
		string(engine.StatusDraft), time.Now().UTC().Format(time.RFC3339),
		req.ID, string(engine.StatusDraft), string(engine.StatusRejected))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotEditable
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM validations WHERE request_id = ?`, req.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteRequest removes an editable request owned by ownerID. Requests
// past Draft/Rejected are never deleted.
func (s *Store) DeleteRequest(ctx context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM leave_requests
		WHERE id = ? AND owner_id = ? AND status IN (?, ?)`,
		id, ownerID, string(engine.StatusDraft), string(engine.StatusRejected))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotEditable
	}
	return nil
}

// GetRequest loads a request with its validation records, ordered by level.
func (s *Store) GetRequest(ctx context.Context, id string) (*engine.LeaveRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, leave_type_id, start_date, end_date, start_portion,
		       end_portion, duration_days, status, comment, rejection_reason,
		       created_at, updated_at, finalized_at
		FROM leave_requests WHERE id = ?`, id)

	req, err := scanRequest(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	validations, err := s.listValidations(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Validations = validations
	return req, nil
}

// ListRequestsByOwner returns all of a user's requests, newest first.
func (s *Store) ListRequestsByOwner(ctx context.Context, ownerID string) ([]*engine.LeaveRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, leave_type_id, start_date, end_date, start_portion,
		       end_portion, duration_days, status, comment, rejection_reason,
		       created_at, updated_at, finalized_at
		FROM leave_requests WHERE owner_id = ? ORDER BY start_date DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

// ListPendingByStatus returns every request waiting at the given level.
func (s *Store) ListPendingByStatus(ctx context.Context, status engine.Status) ([]*engine.LeaveRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, leave_type_id, start_date, end_date, start_portion,
		       end_portion, duration_days, status, comment, rejection_reason,
		       created_at, updated_at, finalized_at
		FROM leave_requests WHERE status = ? ORDER BY created_at`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

// SaveSubmission persists the outcome of a successful Submit. The WHERE
// clause on Draft makes a double submission fail with ErrStaleRequest.
func (s *Store) SaveSubmission(ctx context.Context, req *engine.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE leave_requests SET
			duration_days = ?, status = ?, updated_at = ?, finalized_at = ?
		WHERE id = ? AND status = ?`,
		req.DurationDays.String(), string(req.Status),
		req.UpdatedAt.Format(time.RFC3339), nullableTime(req.FinalizedAt),
		req.ID, string(engine.StatusDraft))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleRequest
	}
	return nil
}

// SaveDecision persists the outcome of a successful Decide: the new
// status and the appended validation record, atomically. The WHERE
// clause on the previous status makes a racing second decision fail
// with ErrStaleRequest instead of double-advancing the request.
func (s *Store) SaveDecision(ctx context.Context, req *engine.LeaveRequest, previous engine.Status, record *engine.ValidationRecord, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE leave_requests SET
			status = ?, rejection_reason = ?, updated_at = ?, finalized_at = ?
		WHERE id = ? AND status = ?`,
		string(req.Status), req.RejectionReason,
		req.UpdatedAt.Format(time.RFC3339), nullableTime(req.FinalizedAt),
		req.ID, string(previous))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleRequest
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO validations (id, request_id, validator_id, approved, comment, level, decided_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		recordID, record.RequestID, record.ValidatorID,
		boolToInt(record.Approved), record.Comment, int(record.Level),
		record.DecidedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// SaveCancellation persists an administrative cancellation.
func (s *Store) SaveCancellation(ctx context.Context, req *engine.LeaveRequest, previous engine.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE leave_requests SET status = ?, updated_at = ?, finalized_at = ?
		WHERE id = ? AND status = ?`,
		string(req.Status), req.UpdatedAt.Format(time.RFC3339),
		nullableTime(req.FinalizedAt), req.ID, string(previous))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleRequest
	}
	return nil
}

func (s *Store) listValidations(ctx context.Context, requestID string) ([]engine.ValidationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT request_id, validator_id, approved, comment, level, decided_at
		FROM validations WHERE request_id = ? ORDER BY level`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []engine.ValidationRecord
	for rows.Next() {
		var r engine.ValidationRecord
		var approved, level int
		var comment sql.NullString
		var decidedAt string
		if err := rows.Scan(&r.RequestID, &r.ValidatorID, &approved, &comment, &level, &decidedAt); err != nil {
			return nil, err
		}
		r.Approved = approved != 0
		r.Comment = comment.String
		r.Level = engine.Level(level)
		r.DecidedAt, _ = time.Parse(time.RFC3339, decidedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

func scanRequest(scan func(dest ...any) error) (*engine.LeaveRequest, error) {
	var req engine.LeaveRequest
	var startDate, endDate, startPortion, endPortion, duration, status string
	var comment, rejection sql.NullString
	var createdAt, updatedAt string
	var finalizedAt sql.NullString

	err := scan(&req.ID, &req.OwnerID, &req.LeaveTypeID, &startDate, &endDate,
		&startPortion, &endPortion, &duration, &status, &comment, &rejection,
		&createdAt, &updatedAt, &finalizedAt)
	if err != nil {
		return nil, err
	}

	req.StartDate, _ = engine.ParseDate(startDate)
	req.EndDate, _ = engine.ParseDate(endDate)
	req.StartPortion = engine.DayPortion(startPortion)
	req.EndPortion = engine.DayPortion(endPortion)
	req.DurationDays, _ = decimal.NewFromString(duration)
	req.Status = engine.Status(status)
	req.Comment = comment.String
	req.RejectionReason = rejection.String
	req.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	req.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if finalizedAt.Valid {
		if t, err := time.Parse(time.RFC3339, finalizedAt.String); err == nil {
			req.FinalizedAt = &t
		}
	}
	return &req, nil
}

func collectRequests(rows *sql.Rows) ([]*engine.LeaveRequest, error) {
	var requests []*engine.LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
