package api

import (
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/usecases"
)

func handleUploadAttachment(uc *usecases.IdeaUsecase) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ideaId, err := idParam(ctx)
		if err != nil {
			presentError(ctx, err)
			return
		}
		uploadedBy, err := strconv.ParseInt(ctx.PostForm("uploaded_by"), 10, 64)
		if err != nil {
			presentError(ctx, errors.Wrap(models.BadParameterError,
				"uploaded_by must be a user id"))
			return
		}
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			presentError(ctx, errors.Wrap(models.BadParameterError,
				"a file is required"))
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			presentError(ctx, err)
			return
		}
		defer file.Close()

		idea, err := uc.UploadAttachment(ctx.Request.Context(), ideaId, uploadedBy,
			fileHeader.Filename, float64(fileHeader.Size), file)
		if err != nil {
			presentError(ctx, err)
			return
		}
		presentRecord(ctx, http.StatusCreated, "attachment uploaded successfully", idea)
	}
}
