// Package store provides the SQLite-backed activity journal: a local record
// of every call made to the expense API and how it ended. It never holds
// expense data.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DefaultRetention is the number of newest entries kept.
const DefaultRetention = 500

// Entry is one journaled API call.
type Entry struct {
	ID        string
	At        time.Time
	Op        string
	ExpenseID string
	Success   bool
	Status    int
	Message   string
	RequestID string
}

// Journal is an append-only activity log with bounded retention.
type Journal struct {
	db        *sql.DB
	retention int
}

// Open opens or creates the journal database at the given path.
func Open(dbPath string) (*Journal, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(2000)")
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Journal{db: db, retention: DefaultRetention}, nil
}

// SetRetention changes how many entries are kept. Values below 1 are ignored.
func (j *Journal) SetRetention(n int) {
	if n > 0 {
		j.retention = n
	}
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends e, filling in ID and At when unset, and prunes entries
// beyond the retention limit.
func (j *Journal) Record(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	success := 0
	if e.Success {
		success = 1
	}

	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO activity
		(id, at, op, expense_id, success, status, message, request_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.At.UTC().Format(time.RFC3339Nano), e.Op, e.ExpenseID,
		success, e.Status, e.Message, e.RequestID,
	)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM activity WHERE seq NOT IN
		(SELECT seq FROM activity ORDER BY seq DESC LIMIT ?)`, j.retention)
	if err != nil {
		return fmt.Errorf("pruning journal: %w", err)
	}

	return tx.Commit()
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(`SELECT
		id, at, op, expense_id, success, status, message, request_id
		FROM activity ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		var expenseID, message, requestID sql.NullString
		var status sql.NullInt64
		var success int

		if err := rows.Scan(&e.ID, &at, &e.Op, &expenseID, &success, &status, &message, &requestID); err != nil {
			return nil, err
		}
		e.At, _ = time.Parse(time.RFC3339Nano, at)
		e.Success = success != 0
		e.ExpenseID = expenseID.String
		e.Message = message.String
		e.RequestID = requestID.String
		e.Status = int(status.Int64)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (j *Journal) Count() (int, error) {
	var count int
	err := j.db.QueryRow("SELECT COUNT(*) FROM activity").Scan(&count)
	return count, err
}

// Clear removes every entry.
func (j *Journal) Clear() error {
	_, err := j.db.Exec("DELETE FROM activity")
	return err
}
