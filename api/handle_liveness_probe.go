package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ideahub/ideahub-backend/usecases"
)

func HandleLivenessProbe(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		usecase := uc.NewLivenessUsecase()
		if err := usecase.Liveness(c.Request.Context()); err != nil {
			presentError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
