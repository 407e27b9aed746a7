package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/pure_utils"
)

// CrudRepository is the persistence engine for one entity descriptor. It is
// a plain value, safe to share: all state lives in the descriptor and the
// registry, both read-only after startup.
//
// Mutating operations expect to be handed a Transaction when the caller
// needs atomicity; the repository itself never opens one.
type CrudRepository struct {
	registry models.Registry
	desc     models.EntityDescriptor
}

func NewCrudRepository(registry models.Registry, desc models.EntityDescriptor) CrudRepository {
	return CrudRepository{registry: registry, desc: desc}
}

func (repo CrudRepository) EntityName() string {
	return repo.desc.Name
}

func (repo CrudRepository) Descriptor() models.EntityDescriptor {
	return repo.desc
}

func (repo CrudRepository) qualifiedColumns() []string {
	return pure_utils.Map(repo.desc.SelectColumns(), func(col string) string {
		return fmt.Sprintf("%s.%s", repo.desc.Table, col)
	})
}

func (repo CrudRepository) selectQuery() squirrel.SelectBuilder {
	return NewQueryBuilder().
		Select(repo.qualifiedColumns()...).
		From(repo.desc.Table)
}

func (repo CrudRepository) pkColumn() string {
	return fmt.Sprintf("%s.%s", repo.desc.Table, repo.desc.PrimaryKey)
}

// Insert persists a new row built from the declared-column subset of fields.
// The primary key is never client-supplied; unknown keys are dropped. The
// returned record is hydrated with the entity's declared relationships.
func (repo CrudRepository) Insert(ctx context.Context, exec Executor, fields map[string]any) (models.Record, error) {
	columns := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))
	for _, field := range repo.desc.Fields {
		if value, ok := fields[field.Name]; ok {
			columns = append(columns, field.Name)
			values = append(values, value)
		}
	}

	returning := "RETURNING " + strings.Join(repo.desc.SelectColumns(), ", ")
	var query squirrel.Sqlizer
	if len(columns) == 0 {
		// Entities whose only non-fk columns are defaulted (teoa reviews) can
		// be created from an empty payload.
		query = squirrel.Expr(fmt.Sprintf("INSERT INTO %s DEFAULT VALUES %s", repo.desc.Table, returning))
	} else {
		query = NewQueryBuilder().
			Insert(repo.desc.Table).
			Columns(columns...).
			Values(values...).
			Suffix(returning)
	}

	record, err := SqlToRecord(ctx, exec, query, repo.desc.Name)
	if err != nil {
		if IsUniqueViolationError(err) {
			return nil, models.NewConflictError(repo.desc.Name)
		}
		if IsForeignKeyViolationError(err) {
			return nil, errors.Wrapf(models.BadParameterError,
				"%s references a missing related entity", repo.desc.Name)
		}
		return nil, err
	}
	return repo.hydrate(ctx, exec, record)
}

func (repo CrudRepository) FindById(ctx context.Context, exec Executor, id int64) (models.Record, error) {
	record, err := SqlToRecord(ctx, exec,
		repo.selectQuery().Where(squirrel.Eq{repo.pkColumn(): id}),
		repo.desc.Name)
	if err != nil {
		return nil, err
	}
	return repo.hydrate(ctx, exec, record)
}

// FindByIds returns the entities that exist, in ascending id order. It does
// not enforce completeness; callers needing all-or-nothing check the length.
func (repo CrudRepository) FindByIds(ctx context.Context, exec Executor, ids []int64) ([]models.Record, error) {
	records, err := SqlToRecords(ctx, exec,
		repo.selectQuery().
			Where(squirrel.Eq{repo.pkColumn(): ids}).
			OrderBy(repo.pkColumn()+" ASC"))
	if err != nil {
		return nil, err
	}
	return repo.hydrateAll(ctx, exec, records)
}

func (repo CrudRepository) FindAll(ctx context.Context, exec Executor) ([]models.Record, error) {
	records, err := SqlToRecords(ctx, exec,
		repo.selectQuery().OrderBy(repo.pkColumn()+" ASC"))
	if err != nil {
		return nil, err
	}
	return repo.hydrateAll(ctx, exec, records)
}

func (repo CrudRepository) CountAll(ctx context.Context, exec Executor) (int, error) {
	return SqlToCount(ctx, exec,
		NewQueryBuilder().Select("COUNT(*)").From(repo.desc.Table))
}

// CountWithFilters compiles the same predicate as
// FindPaginatedWithFilters so the reported total is always consistent with
// the returned windows.
func (repo CrudRepository) CountWithFilters(ctx context.Context, exec Executor, filters []models.Filter) (int, error) {
	pred, err := buildPredicate(repo.registry, repo.desc, filters)
	if err != nil {
		return 0, err
	}

	countExpr := "COUNT(*)"
	if pred.needsDistinct {
		countExpr = fmt.Sprintf("COUNT(DISTINCT %s)", repo.pkColumn())
	}
	query := NewQueryBuilder().Select(countExpr).From(repo.desc.Table)
	for _, join := range pred.joins {
		query = query.Join(join)
	}
	if len(pred.conditions) > 0 {
		query = query.Where(pred.conditions)
	}
	return SqlToCount(ctx, exec, query)
}

// FindPaginated serves one window in ascending primary key order. The fixed
// sort key makes pagination reproducible over a static dataset.
func (repo CrudRepository) FindPaginated(ctx context.Context, exec Executor, offset, limit int) ([]models.Record, error) {
	records, err := SqlToRecords(ctx, exec,
		repo.selectQuery().
			OrderBy(repo.pkColumn()+" ASC").
			Offset(uint64(offset)).
			Limit(uint64(limit)))
	if err != nil {
		return nil, err
	}
	return repo.hydrateAll(ctx, exec, records)
}

func (repo CrudRepository) FindPaginatedWithFilters(ctx context.Context, exec Executor,
	offset, limit int, filters []models.Filter,
) ([]models.Record, error) {
	pred, err := buildPredicate(repo.registry, repo.desc, filters)
	if err != nil {
		return nil, err
	}

	query := repo.selectQuery()
	if pred.needsDistinct {
		query = query.Options("DISTINCT")
	}
	for _, join := range pred.joins {
		query = query.Join(join)
	}
	if len(pred.conditions) > 0 {
		query = query.Where(pred.conditions)
	}
	query = query.
		OrderBy(repo.pkColumn() + " ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit))

	records, err := SqlToRecords(ctx, exec, query)
	if err != nil {
		return nil, err
	}
	return repo.hydrateAll(ctx, exec, records)
}

// UpdateById merges the declared-column subset of fields into the row. The
// primary key is excluded from the merge so it can never be overwritten;
// unknown keys are ignored. Returns a not-found error when the id does not
// resolve.
func (repo CrudRepository) UpdateById(ctx context.Context, exec Executor, id int64, fields map[string]any) (models.Record, error) {
	merge := make(map[string]any, len(fields))
	for _, field := range repo.desc.Fields {
		if value, ok := fields[field.Name]; ok {
			merge[field.Name] = value
		}
	}
	if len(merge) == 0 {
		// Nothing mergeable: behave as a read so the caller still gets the
		// row or a not-found error.
		return repo.FindById(ctx, exec, id)
	}

	query := NewQueryBuilder().
		Update(repo.desc.Table).
		SetMap(merge).
		Where(squirrel.Eq{repo.desc.PrimaryKey: id}).
		Suffix("RETURNING " + strings.Join(repo.desc.SelectColumns(), ", "))

	record, err := SqlToOptionalRecord(ctx, exec, query)
	if err != nil {
		if IsUniqueViolationError(err) {
			return nil, models.NewConflictError(repo.desc.Name)
		}
		if IsForeignKeyViolationError(err) {
			return nil, errors.Wrapf(models.BadParameterError,
				"%s references a missing related entity", repo.desc.Name)
		}
		return nil, err
	}
	if record == nil {
		return nil, models.NewNotFoundError(repo.desc.Name)
	}
	return repo.hydrate(ctx, exec, record)
}

// DeleteById removes one row and its declared cascade dependents, returning
// the removed entity hydrated as it was before deletion.
func (repo CrudRepository) DeleteById(ctx context.Context, exec Executor, id int64) (models.Record, error) {
	record, err := repo.FindById(ctx, exec, id)
	if err != nil {
		return nil, err
	}

	if err := repo.cascadeDelete(ctx, exec, repo.desc, []int64{id}); err != nil {
		return nil, err
	}
	if _, err := ExecBuilder(ctx, exec,
		NewQueryBuilder().Delete(repo.desc.Table).Where(squirrel.Eq{repo.desc.PrimaryKey: id})); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteByIds is all-or-nothing: every id must resolve to an existing row or
// nothing is deleted. Callers run it inside one transaction so the check and
// the deletes are atomic.
func (repo CrudRepository) DeleteByIds(ctx context.Context, exec Executor, ids []int64) ([]models.Record, error) {
	ids = pure_utils.Uniq(ids)
	records, err := repo.FindByIds(ctx, exec, ids)
	if err != nil {
		return nil, err
	}
	if len(records) != len(ids) {
		return nil, models.NewNotFoundError(repo.desc.Name)
	}

	if err := repo.cascadeDelete(ctx, exec, repo.desc, ids); err != nil {
		return nil, err
	}
	if _, err := ExecBuilder(ctx, exec,
		NewQueryBuilder().Delete(repo.desc.Table).Where(squirrel.Eq{repo.desc.PrimaryKey: ids})); err != nil {
		return nil, err
	}
	return records, nil
}

// cascadeDelete removes dependent rows of the rows being deleted, depth
// first, for every relationship declared with cascade: child rows for
// one-to-many, link rows for many-to-many. Relationship order is fixed so
// the emitted statements are deterministic.
func (repo CrudRepository) cascadeDelete(ctx context.Context, exec Executor, desc models.EntityDescriptor, ids []int64) error {
	for _, relName := range sortedRelationshipNames(desc) {
		rel := desc.Relationships[relName]
		if !rel.Cascade {
			continue
		}
		target, ok := repo.registry.Get(rel.Target)
		if !ok {
			return errors.Newf("unknown relationship target %s", rel.Target)
		}

		switch rel.Kind {
		case models.OneToMany:
			childIds, err := SqlToRecords(ctx, exec, NewQueryBuilder().
				Select(target.PrimaryKey).
				From(target.Table).
				Where(squirrel.Eq{rel.ForeignKey: ids}))
			if err != nil {
				return err
			}
			if len(childIds) == 0 {
				continue
			}
			if err := repo.cascadeDelete(ctx, exec, target, pure_utils.Map(childIds,
				func(r models.Record) int64 { return r.Id(target.PrimaryKey) })); err != nil {
				return err
			}
			if _, err := ExecBuilder(ctx, exec, NewQueryBuilder().
				Delete(target.Table).
				Where(squirrel.Eq{rel.ForeignKey: ids})); err != nil {
				return err
			}

		case models.ManyToMany:
			if _, err := ExecBuilder(ctx, exec, NewQueryBuilder().
				Delete(rel.LinkTable).
				Where(squirrel.Eq{rel.LinkOwnerKey: ids})); err != nil {
				return err
			}
		}
	}
	return nil
}

// hydrate loads the record's declared relationships, one level deep: related
// records carry their own columns only.
func (repo CrudRepository) hydrate(ctx context.Context, exec Executor, record models.Record) (models.Record, error) {
	id := record.Id(repo.desc.PrimaryKey)

	for _, relName := range sortedRelationshipNames(repo.desc) {
		rel := repo.desc.Relationships[relName]
		target, ok := repo.registry.Get(rel.Target)
		if !ok {
			return nil, errors.Newf("unknown relationship target %s", rel.Target)
		}
		targetQuery := NewQueryBuilder().
			Select(target.SelectColumns()...).
			From(target.Table)

		switch rel.Kind {
		case models.ManyToOne:
			fk := record[rel.ForeignKey]
			if fk == nil {
				record[relName] = nil
				continue
			}
			related, err := SqlToOptionalRecord(ctx, exec,
				targetQuery.Where(squirrel.Eq{target.PrimaryKey: fk}))
			if err != nil {
				return nil, err
			}
			record[relName] = related

		case models.OneToMany:
			related, err := SqlToRecords(ctx, exec,
				targetQuery.
					Where(squirrel.Eq{rel.ForeignKey: id}).
					OrderBy(target.PrimaryKey+" ASC"))
			if err != nil {
				return nil, err
			}
			record[relName] = related

		case models.ManyToMany:
			columns := pure_utils.Map(target.SelectColumns(), func(col string) string {
				return fmt.Sprintf("%s.%s", target.Table, col)
			})
			related, err := SqlToRecords(ctx, exec, NewQueryBuilder().
				Select(columns...).
				From(target.Table).
				Join(fmt.Sprintf("%s ON %s.%s = %s.%s",
					rel.LinkTable, rel.LinkTable, rel.LinkTargetKey, target.Table, target.PrimaryKey)).
				Where(squirrel.Eq{fmt.Sprintf("%s.%s", rel.LinkTable, rel.LinkOwnerKey): id}).
				OrderBy(fmt.Sprintf("%s.%s ASC", target.Table, target.PrimaryKey)))
			if err != nil {
				return nil, err
			}
			record[relName] = related
		}
	}
	return record, nil
}

func (repo CrudRepository) hydrateAll(ctx context.Context, exec Executor, records []models.Record) ([]models.Record, error) {
	return pure_utils.MapErr(records, func(record models.Record) (models.Record, error) {
		return repo.hydrate(ctx, exec, record)
	})
}

func sortedRelationshipNames(desc models.EntityDescriptor) []string {
	names := make([]string, 0, len(desc.Relationships))
	for name := range desc.Relationships {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
