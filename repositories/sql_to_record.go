package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/ideahub/ideahub-backend/models"
)

// SqlToRecords executes the query and scans every row into a column-keyed
// record.
func SqlToRecords(ctx context.Context, exec Executor, query squirrel.Sqlizer) ([]models.Record, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing sql query")
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Record, error) {
		values, err := pgx.RowToMap(row)
		if err != nil {
			return nil, errors.Wrap(err, "error scanning row to record")
		}
		return models.Record(values), nil
	})
}

// SqlToOptionalRecord returns the single row of the query, or nil when the
// query matches nothing.
func SqlToOptionalRecord(ctx context.Context, exec Executor, query squirrel.Sqlizer) (models.Record, error) {
	records, err := SqlToRecords(ctx, exec, query)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	if len(records) > 1 {
		return nil, errors.Newf("expected 1 or 0 rows, got %d", len(records))
	}
	return records[0], nil
}

// SqlToRecord is SqlToOptionalRecord with a not-found error carrying the
// entity name when the query matches nothing.
func SqlToRecord(ctx context.Context, exec Executor, query squirrel.Sqlizer, entityName string) (models.Record, error) {
	record, err := SqlToOptionalRecord(ctx, exec, query)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, models.NewNotFoundError(entityName)
	}
	return record, nil
}

func SqlToCount(ctx context.Context, exec Executor, query squirrel.Sqlizer) (int, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}

	var count int
	if err := exec.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "error executing count query")
	}
	return count, nil
}

// ExecBuilder executes a non-returning statement and reports affected rows.
func ExecBuilder(ctx context.Context, exec Executor, builder squirrel.Sqlizer) (int64, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}

	tag, err := exec.Exec(ctx, sql, args...)
	if err != nil {
		return 0, errors.Wrap(err, "error executing sql query")
	}
	return tag.RowsAffected(), nil
}
