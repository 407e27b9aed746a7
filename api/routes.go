package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ideahub/ideahub-backend/dto"
	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/usecases"
)

type resource struct {
	path    string
	usecase *usecases.CrudUsecase
	bind    func(*gin.Context) (map[string]any, error)
}

func (res resource) mount(r gin.IRouter) {
	group := r.Group(res.path)
	group.POST("", handleCreate(res.usecase, res.bind))
	group.GET("/all", handleListAll(res.usecase))
	group.GET("", handleListPage(res.usecase))
	group.GET("/:id", handleGetById(res.usecase))
	group.PUT("/:id", handleUpdate(res.usecase))
	group.PATCH("/:id", handleUpdate(res.usecase))
	group.DELETE("/batch-delete", handleBatchDelete(res.usecase))
	group.DELETE("/:id", handleDelete(res.usecase))
}

// AddRoutes mounts the REST surface of every registered entity plus the
// idea-specific upload endpoint.
func AddRoutes(r gin.IRouter, u usecases.Usecases) {
	ideaUsecase := u.NewIdeaUsecase()

	resources := []resource{
		{"/users", u.NewUserUsecase(), bindCreateBody[dto.CreateUserBody]},
		{"/roles", u.NewCrudUsecase(models.RoleDescriptor), bindCreateBody[dto.CreateRoleBody]},
		{"/bus", u.NewCrudUsecase(models.BuDescriptor), bindCreateBody[dto.CreateBuBody]},
		{"/plants", u.NewCrudUsecase(models.PlantDescriptor), bindCreateBody[dto.CreatePlantBody]},
		{"/ideas", ideaUsecase.CrudUsecase, bindCreateBody[dto.CreateIdeaBody]},
		{"/attachments", u.NewAttachmentUsecase(), bindCreateBody[dto.CreateAttachmentBody]},
		{"/comments", u.NewCrudUsecase(models.CommentDescriptor), bindCreateBody[dto.CreateCommentBody]},
		{"/rating-matrices", u.NewCrudUsecase(models.RatingMatrixDescriptor), bindCreateBody[dto.CreateRatingMatrixBody]},
		{"/assignments", u.NewAssignmentUsecase(), bindCreateBody[dto.CreateAssignmentBody]},
		{"/assignment-comments", u.NewCrudUsecase(models.AssignmentCommentDescriptor), bindCreateBody[dto.CreateAssignmentCommentBody]},
		{"/teoa-reviews", u.NewCrudUsecase(models.TeoaReviewDescriptor), bindCreateBody[dto.CreateTeoaReviewBody]},
		{"/teoa-comments", u.NewCrudUsecase(models.TeoaCommentDescriptor), bindCreateBody[dto.CreateTeoaCommentBody]},
	}
	for _, res := range resources {
		res.mount(r)
	}

	r.POST("/ideas/:id/attachments", handleUploadAttachment(ideaUsecase))
}
