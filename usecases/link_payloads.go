package usecases

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/repositories"
)

// parseIdList reads a list of ids out of a decoded JSON payload value.
// Numbers arrive as float64 from encoding/json.
func parseIdList(value any) ([]int64, error) {
	raw, ok := value.([]any)
	if !ok {
		return nil, errors.Wrap(models.BadParameterError, "expected a list of ids")
	}
	ids := make([]int64, 0, len(raw))
	for _, entry := range raw {
		number, ok := entry.(float64)
		if !ok || number != float64(int64(number)) {
			return nil, errors.Wrap(models.BadParameterError, "expected a list of integer ids")
		}
		ids = append(ids, int64(number))
	}
	return ids, nil
}

// replaceLinkedSet validates that every target id exists, then swaps the
// link rows. Runs inside the caller's transaction so a failed validation
// undoes nothing.
func replaceLinkedSet(
	ctx context.Context,
	tx repositories.Transaction,
	targets repositories.CrudRepository,
	rel models.Relationship,
	ownerId int64,
	value any,
) error {
	ids, err := parseIdList(value)
	if err != nil {
		return err
	}

	existing, err := targets.FindByIds(ctx, tx, ids)
	if err != nil {
		return err
	}
	if len(existing) != len(ids) {
		return models.NewNotFoundError(targets.EntityName())
	}

	return repositories.ReplaceLinks(ctx, tx, rel, ownerId, ids)
}
