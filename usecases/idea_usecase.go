package usecases

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/repositories"
	"github.com/ideahub/ideahub-backend/utils"
)

// IdeaUsecase is the generic idea lifecycle plus the two overrides the
// product needs: deleting an idea also deletes the backing file of every
// cascaded attachment, and an idea accepts direct file uploads that become
// attachment rows.
type IdeaUsecase struct {
	*CrudUsecase

	usecases    Usecases
	ideas       repositories.CrudRepository
	attachments repositories.CrudRepository
}

func NewIdeaUsecase(u Usecases) *IdeaUsecase {
	uc := &IdeaUsecase{
		usecases:    u,
		ideas:       u.repository(models.IdeaDescriptor),
		attachments: u.repository(models.AttachmentDescriptor),
	}
	uc.CrudUsecase = u.NewCrudUsecase(models.IdeaDescriptor).WithHooks(CrudHooks{
		AfterDelete: func(ctx context.Context, record models.Record) {
			// The deleted record was hydrated before deletion, so its
			// cascaded attachments are still readable here.
			attachments, _ := record["attachments"].([]models.Record)
			for _, attachment := range attachments {
				deleteAttachmentFile(ctx, u, attachment)
			}
		},
	})
	return uc
}

// UploadAttachment stores the file in the attachments bucket and records it
// as an attachment of the idea, returning the re-hydrated idea. The row
// insert runs in a transaction; if it fails, the freshly stored blob is
// removed again.
func (uc *IdeaUsecase) UploadAttachment(
	ctx context.Context,
	ideaId int64,
	uploadedBy int64,
	fileName string,
	size float64,
	src io.Reader,
) (models.Record, error) {
	exec := uc.usecases.ExecutorFactory.Executor()
	if _, err := uc.ideas.FindById(ctx, exec, ideaId); err != nil {
		return nil, err
	}

	storedName := fmt.Sprintf("%d-%s", ideaId, fileName)
	objectKey := fmt.Sprintf("%s-%s", uuid.NewString(), fileName)
	if err := uc.usecases.BlobRepository.Upload(ctx, uc.usecases.AttachmentsBucketUrl, objectKey, src); err != nil {
		return nil, err
	}

	err := uc.usecases.ExecutorFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		_, err := uc.attachments.Insert(ctx, tx, map[string]any{
			"name":        storedName,
			"size":        size,
			"file_path":   objectKey,
			"idea_id":     ideaId,
			"uploaded_by": uploadedBy,
		})
		return err
	})
	if err != nil {
		if deleteErr := uc.usecases.BlobRepository.DeleteFile(ctx, uc.usecases.AttachmentsBucketUrl, objectKey); deleteErr != nil {
			utils.LoggerFromContext(ctx).ErrorContext(ctx, "failed to remove orphaned attachment file",
				"file_path", objectKey, "error", deleteErr.Error())
		}
		return nil, err
	}

	return uc.ideas.FindById(ctx, exec, ideaId)
}
