// Package storage keeps the console's session journal: every verdict the
// operator receives during one run. The database lives in memory and is gone
// when the process exits.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// sessionDSN opens a database private to a single connection.
const sessionDSN = ":memory:"

// SessionJournal records verdicts for the lifetime of the console session.
type SessionJournal struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSessionJournal creates an empty in-memory journal and applies the schema.
func OpenSessionJournal(ctx context.Context) (*SessionJournal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", sessionDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open session journal: %w", err)
	}

	// The in-memory database only exists while its single connection does.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping session journal: %w", err)
	}

	j := &SessionJournal{db: db, now: time.Now}
	if err := j.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// Close discards the journal.
func (j *SessionJournal) Close() error {
	return j.db.Close()
}
