package dto

import (
	"time"

	"github.com/ideahub/ideahub-backend/models"
)

// CreateBody is the validated create-shape of one entity. Fields returns
// the payload as declared columns, omitting what the client did not supply
// so database defaults apply.
type CreateBody interface {
	Fields() map[string]any
}

type CreateUserBody struct {
	Username       string `json:"username" binding:"required,max=255"`
	Email          string `json:"email" binding:"required,email,max=255"`
	HashedPassword string `json:"hashed_password" binding:"required,max=255"`
	AccountStatus  *bool  `json:"account_status"`
	BuId           *int64 `json:"bu_id"`
}

func (b CreateUserBody) Fields() map[string]any {
	fields := map[string]any{
		"username":        b.Username,
		"email":           b.Email,
		"hashed_password": b.HashedPassword,
	}
	putOptional(fields, "account_status", b.AccountStatus)
	putOptional(fields, "bu_id", b.BuId)
	return fields
}

type CreateRoleBody struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (b CreateRoleBody) Fields() map[string]any {
	return map[string]any{"name": b.Name}
}

type CreateBuBody struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (b CreateBuBody) Fields() map[string]any {
	return map[string]any{"name": b.Name}
}

type CreatePlantBody struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (b CreatePlantBody) Fields() map[string]any {
	return map[string]any{"name": b.Name}
}

type CreateIdeaBody struct {
	Title           string `json:"title" binding:"required"`
	ActualSituation string `json:"actual_situation" binding:"required"`
	Description     string `json:"description" binding:"required"`
	Status          string `json:"status" binding:"omitempty,oneof=created rejected approved assigned 'in progress' implemented closed"`
	SubmitterId     *int64 `json:"submitter_id"`
}

func (b CreateIdeaBody) Fields() map[string]any {
	fields := map[string]any{
		"title":            b.Title,
		"actual_situation": b.ActualSituation,
		"description":      b.Description,
		"status":           models.IdeaStatusCreated,
	}
	if b.Status != "" {
		fields["status"] = b.Status
	}
	putOptional(fields, "submitter_id", b.SubmitterId)
	return fields
}

type CreateAttachmentBody struct {
	Name       string   `json:"name" binding:"required,max=255"`
	Size       *float64 `json:"size" binding:"omitempty,gte=0"`
	FilePath   string   `json:"file_path" binding:"required"`
	IdeaId     *int64   `json:"idea_id"`
	UploadedBy *int64   `json:"uploaded_by"`
}

func (b CreateAttachmentBody) Fields() map[string]any {
	fields := map[string]any{
		"name":      b.Name,
		"file_path": b.FilePath,
	}
	putOptional(fields, "size", b.Size)
	putOptional(fields, "idea_id", b.IdeaId)
	putOptional(fields, "uploaded_by", b.UploadedBy)
	return fields
}

type CreateCommentBody struct {
	Body        string `json:"body" binding:"required"`
	Likes       *int64 `json:"likes" binding:"omitempty,gte=0"`
	CommenterId *int64 `json:"commenter_id"`
	IdeaId      *int64 `json:"idea_id"`
}

func (b CreateCommentBody) Fields() map[string]any {
	fields := map[string]any{"body": b.Body}
	putOptional(fields, "likes", b.Likes)
	putOptional(fields, "commenter_id", b.CommenterId)
	putOptional(fields, "idea_id", b.IdeaId)
	return fields
}

type CreateRatingMatrixBody struct {
	Comments           *string  `json:"comments"`
	Quality            int64    `json:"quality"`
	CostReduction      int64    `json:"cost_reduction"`
	TimeSavings        int64    `json:"time_savings"`
	Ehs                int64    `json:"ehs"`
	Initiative         int64    `json:"initiative"`
	Creativity         int64    `json:"creativity"`
	Transversalization int64    `json:"transversalization"`
	Effectiveness      int64    `json:"effectiveness"`
	TotalScore         *float64 `json:"total_score"`
	IdeaId             *int64   `json:"idea_id"`
}

func (b CreateRatingMatrixBody) Fields() map[string]any {
	fields := map[string]any{
		"quality":            b.Quality,
		"cost_reduction":     b.CostReduction,
		"time_savings":       b.TimeSavings,
		"ehs":                b.Ehs,
		"initiative":         b.Initiative,
		"creativity":         b.Creativity,
		"transversalization": b.Transversalization,
		"effectiveness":      b.Effectiveness,
	}
	putOptional(fields, "comments", b.Comments)
	putOptional(fields, "total_score", b.TotalScore)
	putOptional(fields, "idea_id", b.IdeaId)
	return fields
}

type CreateAssignmentBody struct {
	DueDate *time.Time `json:"due_date"`
	IdeaId  *int64     `json:"idea_id"`
}

func (b CreateAssignmentBody) Fields() map[string]any {
	fields := map[string]any{}
	putOptional(fields, "due_date", b.DueDate)
	putOptional(fields, "idea_id", b.IdeaId)
	return fields
}

type CreateAssignmentCommentBody struct {
	Body         string `json:"body" binding:"required"`
	CommenterId  *int64 `json:"commenter_id"`
	AssignmentId *int64 `json:"assignment_id"`
}

func (b CreateAssignmentCommentBody) Fields() map[string]any {
	fields := map[string]any{"body": b.Body}
	putOptional(fields, "commenter_id", b.CommenterId)
	putOptional(fields, "assignment_id", b.AssignmentId)
	return fields
}

type CreateTeoaReviewBody struct {
	IdeaId *int64 `json:"idea_id"`
}

func (b CreateTeoaReviewBody) Fields() map[string]any {
	fields := map[string]any{}
	putOptional(fields, "idea_id", b.IdeaId)
	return fields
}

type CreateTeoaCommentBody struct {
	Body         string `json:"body" binding:"required"`
	CommenterId  *int64 `json:"commenter_id"`
	TeoaReviewId *int64 `json:"teoa_review_id"`
}

func (b CreateTeoaCommentBody) Fields() map[string]any {
	fields := map[string]any{"body": b.Body}
	putOptional(fields, "commenter_id", b.CommenterId)
	putOptional(fields, "teoa_review_id", b.TeoaReviewId)
	return fields
}

func putOptional[T any](fields map[string]any, key string, value *T) {
	if value != nil {
		fields[key] = *value
	}
}
