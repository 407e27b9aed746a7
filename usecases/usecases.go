package usecases

import (
	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/repositories"
)

// Usecases is the dependency root handed to the API layer. It builds one
// usecase per entity, generic by default, with the entity-specific overrides
// wired in where the original product had them.
type Usecases struct {
	ExecutorFactory      ExecutorFactory
	Registry             models.Registry
	BlobRepository       repositories.BlobRepository
	AttachmentsBucketUrl string
}

func NewUsecases(
	executorFactory ExecutorFactory,
	registry models.Registry,
	blobRepository repositories.BlobRepository,
	attachmentsBucketUrl string,
) Usecases {
	return Usecases{
		ExecutorFactory:      executorFactory,
		Registry:             registry,
		BlobRepository:       blobRepository,
		AttachmentsBucketUrl: attachmentsBucketUrl,
	}
}

func (u Usecases) repository(desc models.EntityDescriptor) repositories.CrudRepository {
	return repositories.NewCrudRepository(u.Registry, desc)
}

// NewCrudUsecase is the plain lifecycle without overrides, used by every
// entity that has none.
func (u Usecases) NewCrudUsecase(desc models.EntityDescriptor) *CrudUsecase {
	return NewCrudUsecase(u.ExecutorFactory, u.repository(desc))
}

func (u Usecases) NewUserUsecase() *CrudUsecase {
	return NewUserUsecase(u)
}

func (u Usecases) NewAssignmentUsecase() *CrudUsecase {
	return NewAssignmentUsecase(u)
}

func (u Usecases) NewAttachmentUsecase() *CrudUsecase {
	return NewAttachmentUsecase(u)
}

func (u Usecases) NewIdeaUsecase() *IdeaUsecase {
	return NewIdeaUsecase(u)
}
