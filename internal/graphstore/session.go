package graphstore

import (
	"context"
	"fmt"

	"github.com/persistorai/graphloader/internal/models"
)

// Session is a leased connection that executes statements against the store.
// A Session is used by a single goroutine and must be released exactly once.
type Session interface {
	Execute(stmt string) (*Result, error)
	Release()
}

// SessionPool hands out independent sessions and is safe for concurrent use.
type SessionPool interface {
	Acquire(ctx context.Context) (Session, error)
	Size() int
	Close()
}

// WithSession leases a session from pool, runs fn with it, and releases it
// on every return path.
func WithSession(ctx context.Context, pool SessionPool, fn func(Session) error) error {
	sess, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer sess.Release()

	return fn(sess)
}

// Exec runs stmt on a freshly leased session and returns its result.
func Exec(ctx context.Context, pool SessionPool, stmt string) (*Result, error) {
	var res *Result

	err := WithSession(ctx, pool, func(s Session) error {
		var execErr error
		res, execErr = s.Execute(stmt)

		return execErr
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// HealthCheck verifies the store is reachable by running a trivial statement.
func HealthCheck(ctx context.Context, pool SessionPool) error {
	res, err := Exec(ctx, pool, "YIELD 1 AS ok")
	if err != nil {
		return fmt.Errorf("health check query: %w", err)
	}

	if len(res.Rows) != 1 {
		return fmt.Errorf("health check query: %w: want 1 row, got %d", models.ErrExecutionFailure, len(res.Rows))
	}

	return nil
}
