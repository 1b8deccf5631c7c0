// Package lock provides the named mutual-exclusion capability that keeps
// concurrent feed generations from interleaving. The capability is optional:
// deployments without a lock service run with Nop and degrade to
// unsynchronized generation.
package lock

import (
	"context"
	"time"
)

// Locker is a named lock shared across processes.
//
// Wait blocks until no transaction holds the key. StartTransaction enters a
// bounded critical section that self-expires after timeout, capping the
// worst-case hold time even if the holder misbehaves. StopTransaction
// releases the section early.
type Locker interface {
	Wait(ctx context.Context, key string) error
	StartTransaction(ctx context.Context, key string, timeout time.Duration) error
	StopTransaction(ctx context.Context, key string) error
}

// Nop is the fallback Locker used when no lock service is configured.
type Nop struct{}

var _ Locker = Nop{}

func (Nop) Wait(ctx context.Context, key string) error {
	return nil
}

func (Nop) StartTransaction(ctx context.Context, key string, timeout time.Duration) error {
	return nil
}

func (Nop) StopTransaction(ctx context.Context, key string) error {
	return nil
}
