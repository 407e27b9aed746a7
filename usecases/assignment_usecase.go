package usecases

import (
	"context"

	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/repositories"
)

// NewAssignmentUsecase overrides the generic update: an "assignees" key in
// the payload (a list of user ids) replaces the assignment's assignee set.
// All ids must resolve to existing users or the whole update rolls back.
func NewAssignmentUsecase(u Usecases) *CrudUsecase {
	users := u.repository(models.UserDescriptor)
	assigneesRel := models.AssignmentDescriptor.Relationships["assignees"]

	return u.NewCrudUsecase(models.AssignmentDescriptor).WithHooks(CrudHooks{
		OnUpdate: func(ctx context.Context, tx repositories.Transaction, id int64, payload map[string]any) error {
			value, ok := payload["assignees"]
			if !ok {
				return nil
			}
			return replaceLinkedSet(ctx, tx, users, assigneesRel, id, value)
		},
	})
}
