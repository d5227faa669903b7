package storage_usage

import (
	"net/http"

	users_enums "receipthub/internal/features/users/enums"
	users_middleware "receipthub/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type StorageUsageController struct {
	storageUsageService *StorageUsageService
}

func (c *StorageUsageController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/storage/usage", c.GetUsage)
}

// GetUsage
// @Summary Get storage and memory usage (ADMIN only)
// @Tags system
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StorageUsageReport
// @Failure 403 {object} map[string]string
// @Router /storage/usage [get]
func (c *StorageUsageController) GetUsage(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	if user.Role != users_enums.UserRoleAdmin {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "only administrators can view storage usage"})
		return
	}

	report, err := c.storageUsageService.GetUsage()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read storage usage"})
		return
	}

	ctx.JSON(http.StatusOK, report)
}
