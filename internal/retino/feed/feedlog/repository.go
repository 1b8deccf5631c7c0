package feedlog

import "context"

// Repository is the port for persisting feed run entries. The processor
// depends on this abstraction, not on SQLite directly, so the implementation
// can be swapped for Postgres or an in-memory fake in tests.
type Repository interface {
	// Save appends a new entry; the table is an append-only audit log.
	Save(ctx context.Context, entry *Entry) error

	// Latest returns up to limit entries, newest first.
	Latest(ctx context.Context, limit int) ([]Entry, error)
}
