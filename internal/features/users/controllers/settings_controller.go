package users_controllers

import (
	"net/http"

	users_middleware "receipthub/internal/features/users/middleware"
	users_models "receipthub/internal/features/users/models"
	users_services "receipthub/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settingsService *users_services.SettingsService
}

func (c *SettingsController) RegisterRoutes(router *gin.RouterGroup) {
	settingsRoutes := router.Group("/users/settings")

	settingsRoutes.GET("", c.GetSettings)
	settingsRoutes.PUT("", c.UpdateSettings)
}

// GetSettings
// @Summary Get user management settings
// @Tags users-settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_models.UsersSettings
// @Router /users/settings [get]
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	settings, err := c.settingsService.GetSettings()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings"})
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// UpdateSettings
// @Summary Update user management settings (ADMIN only)
// @Tags users-settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_models.UsersSettings true "Settings"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/settings [put]
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	settings := &users_models.UsersSettings{}
	if err := ctx.ShouldBindJSON(settings); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.settingsService.UpdateSettings(user, settings, ctx.ClientIP()); err != nil {
		if err.Error() == "only administrators can update settings" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}
