package usecases

import (
	"context"

	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/utils"
)

// NewAttachmentUsecase overrides delete: once the row is gone, the backing
// file is removed from the attachments bucket. File cleanup is best effort;
// a storage failure is logged, never surfaced, since the row is already
// committed away.
func NewAttachmentUsecase(u Usecases) *CrudUsecase {
	return u.NewCrudUsecase(models.AttachmentDescriptor).WithHooks(CrudHooks{
		AfterDelete: func(ctx context.Context, record models.Record) {
			deleteAttachmentFile(ctx, u, record)
		},
	})
}

func deleteAttachmentFile(ctx context.Context, u Usecases, attachment models.Record) {
	filePath, _ := attachment["file_path"].(string)
	if filePath == "" {
		return
	}
	if err := u.BlobRepository.DeleteFile(ctx, u.AttachmentsBucketUrl, filePath); err != nil {
		utils.LoggerFromContext(ctx).ErrorContext(ctx, "failed to delete attachment file",
			"file_path", filePath, "error", err.Error())
	}
}
