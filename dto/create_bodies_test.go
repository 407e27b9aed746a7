package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/ideahub/ideahub-backend/models"
)

// bindingValidator validates the way gin does, against the binding tags.
func bindingValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func TestCreateIdeaBodyStatusValidation(t *testing.T) {
	v := bindingValidator()
	base := CreateIdeaBody{
		Title:           "reduce pump downtime",
		ActualSituation: "weekly manual restarts",
		Description:     "automate the restart sequence",
	}

	validStatuses := []string{
		models.IdeaStatusCreated,
		models.IdeaStatusRejected,
		models.IdeaStatusApproved,
		models.IdeaStatusAssigned,
		models.IdeaStatusInProgress,
		models.IdeaStatusImplemented,
		models.IdeaStatusClosed,
	}
	for _, status := range validStatuses {
		t.Run(status, func(t *testing.T) {
			body := base
			body.Status = status
			assert.NoError(t, v.Struct(body))
		})
	}

	t.Run("undeclared status is rejected", func(t *testing.T) {
		body := base
		body.Status = "definitely-not-a-status"
		err := v.Struct(body)

		var validationErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &validationErrs)
		assert.Equal(t, "oneof", validationErrs[0].Tag())
	})

	t.Run("omitted status passes and defaults to created", func(t *testing.T) {
		assert.NoError(t, v.Struct(base))
		assert.Equal(t, models.IdeaStatusCreated, base.Fields()["status"])
	})

	t.Run("supplied status overrides the default", func(t *testing.T) {
		body := base
		body.Status = models.IdeaStatusInProgress
		assert.Equal(t, models.IdeaStatusInProgress, body.Fields()["status"])
	})
}
