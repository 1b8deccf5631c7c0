// Package feedlog defines the audit trail of feed generations.
//
// Every run of the feed processor appends rows here: one when it starts, one
// when it completes or fails. The log answers "when did the last export run,
// how many orders did it cover, and why did it fail" without digging through
// application logs, and the trace_id column links each row to the full
// distributed trace.
package feedlog

import "time"

// Status is the lifecycle state of one feed generation.
type Status string

const (
	StatusStarted   Status = "STARTED"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Entry is a single row in the feed_runs table, a point-in-time snapshot of
// one feed generation.
type Entry struct {
	// RunID is the unique identifier of this generation; both the STARTED
	// and the terminal row carry the same RunID.
	RunID string

	Status Status

	// OrderCount is the number of orders in the batch handed to the run.
	OrderCount int

	// Error holds the failure message on FAILED rows, empty otherwise.
	Error string

	// TraceID and SpanID are the W3C identifiers of the OpenTelemetry span
	// active when the row was written. Empty when no span is active.
	TraceID string
	SpanID  string

	CreatedAt time.Time
}
