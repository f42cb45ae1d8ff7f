package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pathlab/services/lab"
	"pathlab/utils"
)

// HealthHandler reports liveness plus the store's persistence mode.
func HealthHandler(store *lab.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm Ravi Diagnostic Lab",
			"fallbackMode": store.FallbackMode(),
			"isLoading":    store.IsLoading(),
			"services":     health.Services,
			"checkedAt":    health.CheckedAt,
		})
	}
}
