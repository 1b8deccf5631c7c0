// Package feed orchestrates one feed generation: serialize against other
// generations via the named lock, hydrate the batch, render the document,
// release the lock on every exit path.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopera/retino-feed/internal/pkg/lock"
	"github.com/shopera/retino-feed/internal/retino/domain"
	"github.com/shopera/retino-feed/internal/retino/export"
	"github.com/shopera/retino-feed/internal/retino/feed/feedlog"
)

// LockKey names the coordination lock shared by every instance generating
// this feed.
const LockKey = "retino"

// transactionTimeout caps the critical section so a misbehaving run cannot
// block other generations forever.
const transactionTimeout = 25 * time.Second

// Renderer turns a batch of export records into the wire document.
type Renderer interface {
	Render(records []export.Record) (string, error)
}

// Processor generates the feed for a batch of orders.
type Processor struct {
	locker   lock.Locker
	renderer Renderer
	runs     feedlog.Repository // nil-safe: audit logging skipped if nil
}

// NewProcessor wires the processor. locker must not be nil; pass lock.Nop{}
// when no lock service is configured. runs may be nil.
func NewProcessor(locker lock.Locker, renderer Renderer, runs feedlog.Repository) *Processor {
	return &Processor{
		locker:   locker,
		renderer: renderer,
		runs:     runs,
	}
}

// ProcessFeed hydrates every order in the batch, input order preserved, and
// returns the rendered document.
//
// A hydration failure of any single order aborts the whole batch; no partial
// feed is emitted. The critical section is released before any error
// surfaces.
func (p *Processor) ProcessFeed(ctx context.Context, orders []domain.Order) (string, error) {
	if err := p.locker.Wait(ctx, LockKey); err != nil {
		return "", fmt.Errorf("feed: wait for lock: %w", err)
	}
	if err := p.locker.StartTransaction(ctx, LockKey, transactionTimeout); err != nil {
		return "", fmt.Errorf("feed: enter critical section: %w", err)
	}
	defer func() {
		if err := p.locker.StopTransaction(ctx, LockKey); err != nil {
			slog.ErrorContext(ctx, "failed to release feed lock", "key", LockKey, "error", err)
		}
	}()

	runID := uuid.NewString()
	slog.InfoContext(ctx, "feed generation started", "run_id", runID, "orders", len(orders))
	p.logRun(ctx, feedlog.NewEntry(ctx, runID, feedlog.StatusStarted, len(orders), ""))

	records := make([]export.Record, 0, len(orders))
	for i := range orders {
		record, err := export.Hydrate(&orders[i])
		if err != nil {
			p.logRun(ctx, feedlog.NewEntry(ctx, runID, feedlog.StatusFailed, len(orders), err.Error()))
			return "", fmt.Errorf("feed: hydrate batch: %w", err)
		}
		records = append(records, *record)
	}

	document, err := p.renderer.Render(records)
	if err != nil {
		p.logRun(ctx, feedlog.NewEntry(ctx, runID, feedlog.StatusFailed, len(orders), err.Error()))
		return "", fmt.Errorf("feed: render: %w", err)
	}

	p.logRun(ctx, feedlog.NewEntry(ctx, runID, feedlog.StatusCompleted, len(orders), ""))
	slog.InfoContext(ctx, "feed generation completed", "run_id", runID, "orders", len(orders))

	return document, nil
}

// logRun appends an audit entry. Audit failures must never fail the feed;
// they are logged and dropped.
func (p *Processor) logRun(ctx context.Context, entry *feedlog.Entry) {
	if p.runs == nil {
		return
	}
	if err := p.runs.Save(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to persist feed run entry",
			"run_id", entry.RunID,
			"status", entry.Status,
			"error", err,
		)
	}
}
