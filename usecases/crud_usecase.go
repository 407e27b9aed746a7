package usecases

import (
	"context"

	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/repositories"
	"github.com/ideahub/ideahub-backend/utils"
)

// CrudHooks are the extension seams an entity can use to layer side effects
// on top of the generic lifecycle without duplicating it. BeforeCreate and
// OnUpdate run inside the operation's transaction, so their writes commit or
// roll back with it. AfterDelete runs once the transaction has committed;
// it is for external side effects (file cleanup) and cannot fail the
// request.
type CrudHooks struct {
	BeforeCreate func(ctx context.Context, tx repositories.Transaction, fields map[string]any) error
	OnUpdate     func(ctx context.Context, tx repositories.Transaction, id int64, payload map[string]any) error
	AfterDelete  func(ctx context.Context, record models.Record)
}

// CrudUsecase drives the validate -> transaction -> execute -> respond
// lifecycle for one entity. Reads run against the pool; every mutation runs
// inside one transaction so no partial write is ever visible.
type CrudUsecase struct {
	executorFactory ExecutorFactory
	repository      repositories.CrudRepository
	hooks           CrudHooks
}

func NewCrudUsecase(executorFactory ExecutorFactory, repository repositories.CrudRepository) *CrudUsecase {
	return &CrudUsecase{
		executorFactory: executorFactory,
		repository:      repository,
	}
}

func (uc *CrudUsecase) WithHooks(hooks CrudHooks) *CrudUsecase {
	uc.hooks = hooks
	return uc
}

func (uc *CrudUsecase) EntityName() string {
	return uc.repository.EntityName()
}

func (uc *CrudUsecase) Create(ctx context.Context, fields map[string]any) (models.Record, error) {
	return TransactionReturnValue(ctx, uc.executorFactory,
		func(tx repositories.Transaction) (models.Record, error) {
			if uc.hooks.BeforeCreate != nil {
				if err := uc.hooks.BeforeCreate(ctx, tx, fields); err != nil {
					return nil, err
				}
			}
			return uc.repository.Insert(ctx, tx, fields)
		})
}

// ListAll returns every entity. An empty collection is a no-items error,
// preserved from the historical API contract.
func (uc *CrudUsecase) ListAll(ctx context.Context) ([]models.Record, error) {
	records, err := uc.repository.FindAll(ctx, uc.executorFactory.Executor())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, models.NewNoItemsError(uc.repository.EntityName())
	}
	return records, nil
}

// ListPage serves one filtered window plus the total computed with the same
// filters. Query parameters other than the page controls have already been
// separated out by the handler and arrive here as raw filter params.
func (uc *CrudUsecase) ListPage(ctx context.Context, page models.PageRequest, filterParams map[string]string) (models.Page, error) {
	exec := uc.executorFactory.Executor()
	filters := models.ParseFilters(filterParams)

	var total int
	var records []models.Record
	var err error
	if len(filters) > 0 {
		total, err = uc.repository.CountWithFilters(ctx, exec, filters)
		if err != nil {
			return models.Page{}, err
		}
		records, err = uc.repository.FindPaginatedWithFilters(ctx, exec, page.Offset(), page.ItemsPerPage, filters)
	} else {
		total, err = uc.repository.CountAll(ctx, exec)
		if err != nil {
			return models.Page{}, err
		}
		records, err = uc.repository.FindPaginated(ctx, exec, page.Offset(), page.ItemsPerPage)
	}
	if err != nil {
		return models.Page{}, err
	}
	if len(records) == 0 {
		return models.Page{}, models.NewNoItemsError(uc.repository.EntityName())
	}

	return models.Page{Items: records, Page: page.Page, Total: total}, nil
}

func (uc *CrudUsecase) GetById(ctx context.Context, id int64) (models.Record, error) {
	return uc.repository.FindById(ctx, uc.executorFactory.Executor(), id)
}

// UpdateById merges the payload into the entity. An empty payload is
// rejected before any storage is touched.
func (uc *CrudUsecase) UpdateById(ctx context.Context, id int64, payload map[string]any) (models.Record, error) {
	if len(payload) == 0 {
		return nil, models.MissingRequiredFieldError
	}

	return TransactionReturnValue(ctx, uc.executorFactory,
		func(tx repositories.Transaction) (models.Record, error) {
			if uc.hooks.OnUpdate != nil {
				if err := uc.hooks.OnUpdate(ctx, tx, id, payload); err != nil {
					return nil, err
				}
			}
			return uc.repository.UpdateById(ctx, tx, id, payload)
		})
}

func (uc *CrudUsecase) DeleteById(ctx context.Context, id int64) (models.Record, error) {
	record, err := TransactionReturnValue(ctx, uc.executorFactory,
		func(tx repositories.Transaction) (models.Record, error) {
			return uc.repository.DeleteById(ctx, tx, id)
		})
	if err != nil {
		return nil, err
	}

	uc.runAfterDelete(ctx, record)
	return record, nil
}

// DeleteByIds is all-or-nothing: the repository checks completeness and the
// surrounding transaction guarantees nothing is deleted when any id is
// missing.
func (uc *CrudUsecase) DeleteByIds(ctx context.Context, ids []int64) ([]models.Record, error) {
	if len(ids) == 0 {
		return nil, models.NewNotFoundError(uc.repository.EntityName())
	}

	records, err := TransactionReturnValue(ctx, uc.executorFactory,
		func(tx repositories.Transaction) ([]models.Record, error) {
			return uc.repository.DeleteByIds(ctx, tx, ids)
		})
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		uc.runAfterDelete(ctx, record)
	}
	return records, nil
}

func (uc *CrudUsecase) runAfterDelete(ctx context.Context, record models.Record) {
	if uc.hooks.AfterDelete == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			utils.LoggerFromContext(ctx).ErrorContext(ctx, "panic in after-delete hook",
				"entity", uc.repository.EntityName(), "panic", r)
		}
	}()
	uc.hooks.AfterDelete(ctx, record)
}
