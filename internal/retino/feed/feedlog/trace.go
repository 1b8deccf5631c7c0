package feedlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// NewEntry builds an Entry with trace identifiers taken from the active
// OpenTelemetry span in ctx. Without an active span (unit tests, tracing
// disabled) both identifiers stay empty.
func NewEntry(ctx context.Context, runID string, status Status, orderCount int, errMsg string) *Entry {
	entry := &Entry{
		RunID:      runID,
		Status:     status,
		OrderCount: orderCount,
		Error:      errMsg,
		CreatedAt:  time.Now().UTC(),
	}

	sc := trace.SpanFromContext(ctx).SpanContext()
	if sc.IsValid() {
		entry.TraceID = sc.TraceID().String()
		entry.SpanID = sc.SpanID().String()
	}

	return entry
}
