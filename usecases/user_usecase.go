package usecases

import (
	"context"

	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/repositories"
)

// NewUserUsecase is the generic user lifecycle plus one override: a "roles"
// key in an update payload (a list of role ids) atomically replaces the
// user's role assignments. "roles" is not a users column, so the generic
// merge ignores it and the hook is its only consumer.
func NewUserUsecase(u Usecases) *CrudUsecase {
	roles := u.repository(models.RoleDescriptor)
	rolesRel := models.UserDescriptor.Relationships["roles"]

	return u.NewCrudUsecase(models.UserDescriptor).WithHooks(CrudHooks{
		OnUpdate: func(ctx context.Context, tx repositories.Transaction, id int64, payload map[string]any) error {
			value, ok := payload["roles"]
			if !ok {
				return nil
			}
			return replaceLinkedSet(ctx, tx, roles, rolesRel, id, value)
		},
	})
}
