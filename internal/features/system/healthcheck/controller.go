package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/healthcheck", c.GetHealth)
}

// GetHealth
// @Summary Healthcheck
// @Description Reports backend, database, cache and storage health
// @Tags system
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} HealthStatus
// @Router /healthcheck [get]
func (c *HealthcheckController) GetHealth(ctx *gin.Context) {
	health := c.healthcheckService.GetHealth()

	statusCode := http.StatusOK
	if health.Status != "ok" {
		statusCode = http.StatusServiceUnavailable
	}

	ctx.JSON(statusCode, health)
}
