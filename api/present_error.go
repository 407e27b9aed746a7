package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ideahub/ideahub-backend/dto"
	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/utils"
)

func presentError(ctx *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		err = fieldValidationError(validationErrs)
	}

	var fieldErr models.FieldValidationError
	switch {
	case errors.As(err, &fieldErr):
		ctx.JSON(http.StatusBadRequest, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: dto.ValidationError,
			Details:   fieldErr,
		})
	case errors.Is(err, models.MissingRequiredFieldError):
		ctx.JSON(http.StatusBadRequest, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: dto.MissingRequiredField,
		})
	case errors.Is(err, models.BadParameterError):
		ctx.JSON(http.StatusBadRequest, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: dto.ValidationError,
		})
	case errors.Is(err, models.NoItemsError):
		ctx.JSON(http.StatusNotFound, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: dto.NoItems,
		})
	case errors.Is(err, models.NotFoundError):
		ctx.JSON(http.StatusNotFound, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: dto.NotFound,
		})
	case errors.Is(err, models.ConflictError):
		ctx.JSON(http.StatusConflict, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: dto.Conflict,
		})
	default:
		reqCtx := ctx.Request.Context()
		utils.LoggerFromContext(reqCtx).ErrorContext(reqCtx,
			"unexpected error handling request",
			"error", err.Error())
		ctx.JSON(http.StatusInternalServerError, dto.APIErrorResponse{
			Message:   "An unexpected error occurred",
			ErrorCode: dto.TransactionFailed,
		})
	}
}

func fieldValidationError(errs validator.ValidationErrors) models.FieldValidationError {
	out := make(models.FieldValidationError, len(errs))
	for _, fieldErr := range errs {
		out[fieldErr.Field()] = fieldErr.Tag()
	}
	return out
}
