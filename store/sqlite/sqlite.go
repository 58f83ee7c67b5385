/*
Package sqlite provides a SQLite-backed audit.Sink.

PURPOSE:
  Durable retention of the processing diagnostics trail for the server
  mode. The ledger itself is never persisted - it is an in-memory
  accumulator over one input sequence - but the per-event outcomes are
  worth keeping across restarts for investigation.

APPEND-ONLY ENFORCEMENT:
  No UPDATE, no DELETE. The audit_events table only ever grows.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): readers don't block the
  single writer, and crash recovery is cleaner.

USAGE:
  sink, err := sqlite.New("./audit.db")   // ":memory:" for tests
  if err != nil { ... }
  defer sink.Close()
  proc := engine.NewProcessor(engine.WithAudit(sink))

SEE ALSO:
  - audit: the Sink interface and in-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/payments-engine/audit"
)

const timeLayout = time.RFC3339Nano

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse recorded_at %q: %w", s, err)
	}
	return t, nil
}

// Store implements audit.Sink on SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ audit.Sink = (*Store)(nil)

// New opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Per-event processing outcomes (append-only)
	CREATE TABLE IF NOT EXISTS audit_events (
		id          TEXT PRIMARY KEY,
		seq         INTEGER NOT NULL,
		kind        TEXT NOT NULL,
		client      INTEGER NOT NULL,
		tx          INTEGER NOT NULL,
		amount      TEXT NOT NULL DEFAULT '',
		outcome     TEXT NOT NULL,
		reason      TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_audit_events_outcome ON audit_events(outcome);
	CREATE INDEX IF NOT EXISTS idx_audit_events_client ON audit_events(client);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one entry.
func (s *Store) Record(ctx context.Context, e audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, seq, kind, client, tx, amount, outcome, reason, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Seq, e.Kind, e.Client, e.Tx, e.Amount, string(e.Outcome), e.Reason,
		e.RecordedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// Entries returns recorded entries in append order; limit <= 0 means all.
func (s *Store) Entries(ctx context.Context, limit int) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, seq, kind, client, tx, amount, outcome, reason, recorded_at
		FROM audit_events ORDER BY rowid`
	args := []any{}
	if limit > 0 {
		// Most recent limit entries, still returned oldest-first.
		query = `
			SELECT id, seq, kind, client, tx, amount, outcome, reason, recorded_at
			FROM (
				SELECT rowid AS rid, id, seq, kind, client, tx, amount, outcome, reason, recorded_at
				FROM audit_events ORDER BY rowid DESC LIMIT ?
			) ORDER BY rid`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var outcome, recordedAt string
		if err := rows.Scan(&e.ID, &e.Seq, &e.Kind, &e.Client, &e.Tx, &e.Amount, &outcome, &e.Reason, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.Outcome = audit.Outcome(outcome)
		e.RecordedAt, err = parseTime(recordedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
