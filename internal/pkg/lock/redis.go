package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultPollInterval = 100 * time.Millisecond

// RedisLocker implements Locker on top of a shared Redis instance so that
// multiple service instances serialize against each other. A transaction is a
// SETNX key with a TTL equal to the transaction timeout; Redis expiry is what
// enforces the bounded hold time.
type RedisLocker struct {
	client       *redis.Client
	keyPrefix    string
	pollInterval time.Duration
	// token identifies this process as the holder so StopTransaction does
	// not release a section acquired by somebody else after our TTL expired.
	token string
}

var _ Locker = (*RedisLocker)(nil)

func NewRedisLocker(addr, password string, db int) *RedisLocker {
	return &RedisLocker{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		keyPrefix:    "feed:lock:",
		pollInterval: defaultPollInterval,
		token:        uuid.NewString(),
	}
}

// NewRedisLockerWithClient wires an existing client, useful in tests or when
// sharing a client across components.
func NewRedisLockerWithClient(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client:       client,
		keyPrefix:    "feed:lock:",
		pollInterval: defaultPollInterval,
		token:        uuid.NewString(),
	}
}

// Ping verifies connectivity so a misconfigured deployment fails at startup
// instead of at the first feed request.
func (l *RedisLocker) Ping(ctx context.Context) error {
	if err := l.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("lock: redis ping: %w", err)
	}
	return nil
}

func (l *RedisLocker) Close() error {
	return l.client.Close()
}

// Wait polls until no transaction holds the key. The wait is unbounded by
// design; cancellation comes only from ctx.
func (l *RedisLocker) Wait(ctx context.Context, key string) error {
	for {
		held, err := l.client.Exists(ctx, l.keyPrefix+key).Result()
		if err != nil {
			return fmt.Errorf("lock: check %q: %w", key, err)
		}
		if held == 0 {
			return nil
		}
		if err := l.sleep(ctx); err != nil {
			return err
		}
	}
}

// StartTransaction acquires the named section. Wait and StartTransaction are
// two separate Redis operations, so a competitor may slip in between; the
// SETNX loop keeps retrying until this process owns the key.
func (l *RedisLocker) StartTransaction(ctx context.Context, key string, timeout time.Duration) error {
	for {
		acquired, err := l.client.SetNX(ctx, l.keyPrefix+key, l.token, timeout).Result()
		if err != nil {
			return fmt.Errorf("lock: acquire %q: %w", key, err)
		}
		if acquired {
			return nil
		}
		if err := l.sleep(ctx); err != nil {
			return err
		}
	}
}

// StopTransaction releases the section if this process still holds it. When
// the TTL already expired and another process took over, the key is left
// alone.
func (l *RedisLocker) StopTransaction(ctx context.Context, key string) error {
	holder, err := l.client.Get(ctx, l.keyPrefix+key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lock: release %q: %w", key, err)
	}
	if holder != l.token {
		return nil
	}
	if err := l.client.Del(ctx, l.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("lock: release %q: %w", key, err)
	}
	return nil
}

func (l *RedisLocker) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(l.pollInterval):
		return nil
	}
}
