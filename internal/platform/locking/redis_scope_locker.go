// Package locking holds distributed alternatives to the Postgres advisory lock.
package locking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	"github.com/bsm/redislock"
	"github.com/jackc/pgx/v5"
)

// RedisScopeLocker serializes serial allocation across processes with a Redis lock
// per (region, category). The lock outlives the transaction's commit and is
// released afterwards by the caller.
type RedisScopeLocker struct {
	client  *redislock.Client
	ttl     time.Duration
	backoff time.Duration
}

// NewRedisScopeLocker creates a locker on top of an existing redislock client.
func NewRedisScopeLocker(client *redislock.Client, ttl time.Duration) *RedisScopeLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisScopeLocker{client: client, ttl: ttl, backoff: 25 * time.Millisecond}
}

var _ portsrepo.ScopeLocker = (*RedisScopeLocker)(nil)

// ScopeKey is the Redis key guarding one scope.
func ScopeKey(regionID, categoryID int64) string {
	return fmt.Sprintf("serial:%d:%d", regionID, categoryID)
}

// Lock retries until the lock is obtained or ctx ends. A lock that cannot be
// obtained is reported as a transaction conflict so the creator retries.
func (l *RedisScopeLocker) Lock(ctx context.Context, _ pgx.Tx, regionID, categoryID int64) (func(context.Context), error) {
	key := ScopeKey(regionID, categoryID)
	lock, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(l.backoff),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, fmt.Errorf("%w: scope lock %s not obtained", apperrors.ErrTransactionConflict, key)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scope lock %s: %v", apperrors.ErrStoreUnavailable, key, err)
	}

	return func(ctx context.Context) {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			slog.WarnContext(ctx, "Failed to release scope lock", slog.String("key", key), slog.String("error", err.Error()))
		}
	}, nil
}
