// Package sqlite provides the SQLite-backed implementation of
// feedlog.Repository.
//
// WAL mode is enabled on Open so the HTTP history endpoint can read while a
// feed run is appending rows.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopera/retino-feed/internal/retino/feed/feedlog"

	// Register the pure-Go SQLite driver; no CGO, builds anywhere.
	_ "modernc.org/sqlite"
)

// schema is applied once on startup. The table is append-only: a run appears
// as a STARTED row followed by a COMPLETED or FAILED row with the same
// run_id.
const schema = `
CREATE TABLE IF NOT EXISTS feed_runs (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Identifier of the feed generation; two rows per finished run.
    run_id       TEXT    NOT NULL,

    -- STARTED | COMPLETED | FAILED
    status       TEXT    NOT NULL,

    -- Number of orders in the batch.
    order_count  INTEGER NOT NULL DEFAULT 0,

    -- Failure message on FAILED rows.
    error        TEXT    NOT NULL DEFAULT '',

    -- W3C trace/span of the OTel span active during the run.
    trace_id     TEXT    NOT NULL DEFAULT '',
    span_id      TEXT    NOT NULL DEFAULT '',

    -- RFC3339 stored as TEXT, the SQLite idiom.
    created_at   TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feed_runs_run_id ON feed_runs(run_id, created_at);
`

// Repository is the SQLite implementation of feedlog.Repository.
type Repository struct {
	db *sql.DB
}

var _ feedlog.Repository = (*Repository)(nil)

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	// "sqlite", not "sqlite3": modernc driver name.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("feedlog: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("feedlog: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts a new run entry. Safe for concurrent use.
func (r *Repository) Save(ctx context.Context, entry *feedlog.Entry) error {
	const q = `
		INSERT INTO feed_runs
			(run_id, status, order_count, error, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.RunID,
		string(entry.Status),
		entry.OrderCount,
		entry.Error,
		entry.TraceID,
		entry.SpanID,
		entry.CreatedAt.UTC().Format("2006-01-02T15:04:05.999999999Z"),
	)
	if err != nil {
		return fmt.Errorf("feedlog: save run %q: %w", entry.RunID, err)
	}
	return nil
}

// Latest returns up to limit entries, newest first.
func (r *Repository) Latest(ctx context.Context, limit int) ([]feedlog.Entry, error) {
	const q = `
		SELECT run_id, status, order_count, error, trace_id, span_id, created_at
		FROM   feed_runs
		ORDER  BY created_at DESC, id DESC
		LIMIT  ?`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("feedlog: list runs: %w", err)
	}
	defer rows.Close()

	var entries []feedlog.Entry
	for rows.Next() {
		var entry feedlog.Entry
		var createdAt string
		if err := rows.Scan(
			&entry.RunID,
			&entry.Status,
			&entry.OrderCount,
			&entry.Error,
			&entry.TraceID,
			&entry.SpanID,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("feedlog: scan run: %w", err)
		}
		entry.CreatedAt, err = parseRFC3339(createdAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("feedlog: list runs: %w", err)
	}

	return entries, nil
}
