package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Executor is the querying surface shared by the connection pool and an open
// transaction. Repositories never care which one they are handed; the caller
// decides the transaction boundary.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Transaction marks an Executor that is scoped to one open transaction.
// Everything executed through it becomes visible atomically on commit.
type Transaction interface {
	Executor
}
