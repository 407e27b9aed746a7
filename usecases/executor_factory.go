package usecases

import (
	"context"

	"github.com/ideahub/ideahub-backend/repositories"
)

// ExecutorFactory provides request-scoped database access: a pool-backed
// executor for reads, one transaction per mutating operation. Satisfied by
// repositories.ExecutorGetter.
type ExecutorFactory interface {
	Executor() repositories.Executor
	Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error
}

func TransactionReturnValue[ReturnType any](
	ctx context.Context,
	factory ExecutorFactory,
	fn func(tx repositories.Transaction) (ReturnType, error),
) (ReturnType, error) {
	var value ReturnType
	transactionErr := factory.Transaction(ctx, func(tx repositories.Transaction) error {
		var fnErr error
		value, fnErr = fn(tx)
		return fnErr
	})
	return value, transactionErr
}
