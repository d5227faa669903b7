package users_controllers

import (
	"net/http"

	users_dto "receipthub/internal/features/users/dto"
	users_middleware "receipthub/internal/features/users/middleware"
	users_services "receipthub/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManagementController struct {
	managementService *users_services.ManagementService
}

func (c *ManagementController) RegisterRoutes(router *gin.RouterGroup) {
	managementRoutes := router.Group("/users/management")

	managementRoutes.GET("", c.ListUsers)
	managementRoutes.PUT("/:userId/role", c.ChangeUserRole)
	managementRoutes.PUT("/:userId/status", c.ChangeUserStatus)
}

// ListUsers
// @Summary List users (ADMIN only)
// @Tags users-management
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} users_dto.ListUsersResponseDTO
// @Failure 403 {object} map[string]string
// @Router /users/management [get]
func (c *ManagementController) ListUsers(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	request := &users_dto.ListUsersRequestDTO{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.managementService.ListUsers(user, request)
	if err != nil {
		if err.Error() == "only administrators can list users" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ChangeUserRole
// @Summary Change a user's role (ADMIN only)
// @Tags users-management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param request body users_dto.ChangeUserRoleRequestDTO true "New role"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/management/{userId}/role [put]
func (c *ManagementController) ChangeUserRole(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	request := &users_dto.ChangeUserRoleRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.managementService.ChangeUserRole(user, targetUserID, request.Role, ctx.ClientIP()); err != nil {
		if err.Error() == "only administrators can change user roles" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User role updated"})
}

// ChangeUserStatus
// @Summary Activate or deactivate a user (ADMIN only)
// @Tags users-management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param request body users_dto.ChangeUserStatusRequestDTO true "New status"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/management/{userId}/status [put]
func (c *ManagementController) ChangeUserStatus(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	request := &users_dto.ChangeUserStatusRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.managementService.ChangeUserStatus(user, targetUserID, request.Status, ctx.ClientIP()); err != nil {
		if err.Error() == "only administrators can change user status" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User status updated"})
}
