package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/ideahub/ideahub-backend/dto"
	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/usecases"
)

// bindCreateBody validates the creation payload for an entity and turns it
// into the column map the repository expects.
func bindCreateBody[Body dto.CreateBody](ctx *gin.Context) (map[string]any, error) {
	var body Body
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, err
	}
	return body.Fields(), nil
}

func idParam(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(models.BadParameterError, "invalid id %q", ctx.Param("id"))
	}
	return id, nil
}

// pageRequest reads the pagination window from the query string. Every other
// query parameter is treated as a filter; repeated keys keep the last value.
func pageRequest(ctx *gin.Context) (models.PageRequest, map[string]string, error) {
	page := models.DefaultPage
	itemsPerPage := models.DefaultItemsPerPage

	filters := make(map[string]string)
	for key, values := range ctx.Request.URL.Query() {
		if len(values) == 0 {
			continue
		}
		value := values[len(values)-1]
		switch key {
		case "page":
			parsed, err := strconv.Atoi(value)
			if err != nil || parsed < 1 {
				return models.PageRequest{}, nil,
					errors.Wrapf(models.BadParameterError, "invalid page %q", value)
			}
			page = parsed
		case "items_per_page":
			parsed, err := strconv.Atoi(value)
			if err != nil || parsed < 1 {
				return models.PageRequest{}, nil,
					errors.Wrapf(models.BadParameterError, "invalid items_per_page %q", value)
			}
			itemsPerPage = parsed
		default:
			filters[key] = value
		}
	}
	return models.NewPageRequest(page, itemsPerPage), filters, nil
}

func handleCreate(uc *usecases.CrudUsecase, bind func(*gin.Context) (map[string]any, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fields, err := bind(ctx)
		if err != nil {
			presentError(ctx, err)
			return
		}
		record, err := uc.Create(ctx.Request.Context(), fields)
		if err != nil {
			presentError(ctx, err)
			return
		}
		presentRecord(ctx, http.StatusCreated,
			fmt.Sprintf("%s created successfully", uc.EntityName()), record)
	}
}

func handleListPage(uc *usecases.CrudUsecase) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		page, filters, err := pageRequest(ctx)
		if err != nil {
			presentError(ctx, err)
			return
		}
		result, err := uc.ListPage(ctx.Request.Context(), page, filters)
		if err != nil {
			presentError(ctx, err)
			return
		}
		presentPage(ctx, fmt.Sprintf("%s list", uc.EntityName()), result)
	}
}

func handleListAll(uc *usecases.CrudUsecase) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		records, err := uc.ListAll(ctx.Request.Context())
		if err != nil {
			presentError(ctx, err)
			return
		}
		presentRecords(ctx, fmt.Sprintf("%s list", uc.EntityName()), records)
	}
}

func handleGetById(uc *usecases.CrudUsecase) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := idParam(ctx)
		if err != nil {
			presentError(ctx, err)
			return
		}
		record, err := uc.GetById(ctx.Request.Context(), id)
		if err != nil {
			presentError(ctx, err)
			return
		}
		presentRecord(ctx, http.StatusOK,
			fmt.Sprintf("%s found", uc.EntityName()), record)
	}
}

func handleUpdate(uc *usecases.CrudUsecase) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := idParam(ctx)
		if err != nil {
			presentError(ctx, err)
			return
		}
		var payload map[string]any
		if err := ctx.ShouldBindJSON(&payload); err != nil {
			presentError(ctx, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		record, err := uc.UpdateById(ctx.Request.Context(), id, payload)
		if err != nil {
			presentError(ctx, err)
			return
		}
		presentRecord(ctx, http.StatusOK,
			fmt.Sprintf("%s updated successfully", uc.EntityName()), record)
	}
}

func handleDelete(uc *usecases.CrudUsecase) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := idParam(ctx)
		if err != nil {
			presentError(ctx, err)
			return
		}
		if _, err := uc.DeleteById(ctx.Request.Context(), id); err != nil {
			presentError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.Response{
			Message: fmt.Sprintf("%s deleted successfully", uc.EntityName()),
		})
	}
}

func handleBatchDelete(uc *usecases.CrudUsecase) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body dto.BatchDeleteBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			presentError(ctx, err)
			return
		}
		deleted, err := uc.DeleteByIds(ctx.Request.Context(), body.Ids)
		if err != nil {
			presentError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.Response{
			Message: fmt.Sprintf("%d %s deleted successfully", len(deleted), uc.EntityName()),
		})
	}
}
