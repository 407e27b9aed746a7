package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
)

// connectionPool is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type connectionPool interface {
	Executor
	Begin(ctx context.Context) (pgx.Tx, error)
}

type ExecutorGetter struct {
	pool connectionPool
}

func NewExecutorGetter(pool connectionPool) ExecutorGetter {
	return ExecutorGetter{pool: pool}
}

// Executor returns a request-scoped executor backed by the pool, for
// read-only operations that do not need a transaction.
func (g ExecutorGetter) Executor() Executor {
	return g.pool
}

// Transaction runs fn inside one transaction: commit if fn returns nil,
// rollback otherwise. pgx.BeginFunc guarantees the rollback runs on every
// exit path, panics included.
func (g ExecutorGetter) Transaction(ctx context.Context, fn func(tx Transaction) error) error {
	err := pgx.BeginFunc(ctx, g.pool, func(tx pgx.Tx) error {
		return fn(tx)
	})
	return errors.Wrap(err, "error executing transaction")
}
