// Package distlock guards the delivery run against overlapping executions.
// The external scheduler is responsible for non-overlap; the lock catches
// operator mistakes (manual reruns, misconfigured cron) before they cause
// duplicate sends.
package distlock

import (
	"context"
	"database/sql"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RunLock is the interface for the single-run guard. Implementations are
// meant to be used from one goroutine for the lifetime of one run.
type RunLock interface {
	// Acquire tries to take the lock. Returns true on success.
	Acquire(ctx context.Context) (bool, error)
	// Release gives the lock back if we still own it.
	Release(ctx context.Context) error
}

// New creates a run lock using the best available backend. If redisClient is
// non-nil, Redis is used (preferred when several hosts can trigger the job).
// Otherwise a PostgreSQL advisory lock is used; it releases automatically
// when the session drops, so a crashed run cannot wedge the next one.
func New(redisClient *redis.Client, db *sql.DB, key string, ttl time.Duration) RunLock {
	if redisClient != nil {
		return NewRedisLock(redisClient, key, ttl)
	}
	return NewPGAdvisoryLock(db, key)
}

// PGAdvisoryLock implements RunLock using pg_try_advisory_lock, with the
// lock ID derived deterministically from the key string.
type PGAdvisoryLock struct {
	db     *sql.DB
	lockID int64
}

// NewPGAdvisoryLock creates a Postgres-backed run lock.
func NewPGAdvisoryLock(db *sql.DB, key string) *PGAdvisoryLock {
	h := fnv.New64a()
	h.Write([]byte(key))
	return &PGAdvisoryLock{
		db:     db,
		lockID: int64(h.Sum64()),
	}
}

// Acquire tries to take the advisory lock without blocking.
func (l *PGAdvisoryLock) Acquire(ctx context.Context) (bool, error) {
	var acquired bool
	err := l.db.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", l.lockID).Scan(&acquired)
	return acquired, err
}

// Release releases the advisory lock.
func (l *PGAdvisoryLock) Release(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", l.lockID)
	return err
}
