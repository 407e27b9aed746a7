package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/ideahub/ideahub-backend/models"
)

// ReplaceLinks swaps the full link-row set of one many-to-many relationship:
// every existing row for the owner is removed and the given target ids are
// linked instead. Callers run it inside the transaction of the operation
// that triggered the replacement.
func ReplaceLinks(ctx context.Context, exec Executor, rel models.Relationship, ownerId int64, targetIds []int64) error {
	if rel.Kind != models.ManyToMany {
		return errors.New("ReplaceLinks requires a many-to-many relationship")
	}

	if _, err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Delete(rel.LinkTable).
		Where(squirrel.Eq{rel.LinkOwnerKey: ownerId})); err != nil {
		return err
	}
	if len(targetIds) == 0 {
		return nil
	}

	insert := NewQueryBuilder().
		Insert(rel.LinkTable).
		Columns(rel.LinkOwnerKey, rel.LinkTargetKey)
	for _, targetId := range targetIds {
		insert = insert.Values(ownerId, targetId)
	}
	_, err := ExecBuilder(ctx, exec, insert)
	return err
}
