package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ideahub/ideahub-backend/dto"
	"github.com/ideahub/ideahub-backend/models"
)

func presentRecord(ctx *gin.Context, status int, message string, record models.Record) {
	ctx.JSON(status, dto.Response{Message: message, Data: record})
}

func presentRecords(ctx *gin.Context, message string, records []models.Record) {
	ctx.JSON(http.StatusOK, dto.Response{Message: message, Data: records})
}

func presentPage(ctx *gin.Context, message string, page models.Page) {
	ctx.JSON(http.StatusOK, dto.PaginatedResponse{
		Message: message,
		Content: page.Items,
		Page:    page.Page,
		Total:   page.Total,
	})
}
