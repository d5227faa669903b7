package businesses_controllers

import (
	"net/http"

	businesses_dto "receipthub/internal/features/businesses/dto"
	businesses_services "receipthub/internal/features/businesses/services"
	users_middleware "receipthub/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipController struct {
	membershipService *businesses_services.MembershipService
}

func (c *MembershipController) RegisterRoutes(router *gin.RouterGroup) {
	memberRoutes := router.Group("/businesses/:businessId/members")

	memberRoutes.GET("", c.GetMembers)
	memberRoutes.POST("", c.AddMember)
	memberRoutes.PUT("/:userId/role", c.ChangeMemberRole)
	memberRoutes.DELETE("/:userId", c.RemoveMember)
}

// GetMembers
// @Summary List business members
// @Tags business-members
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Success 200 {object} businesses_dto.GetMembersResponseDTO
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId}/members [get]
func (c *MembershipController) GetMembers(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	businessID, err := uuid.Parse(ctx.Param("businessId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	response, err := c.membershipService.GetMembers(businessID, user)
	if err != nil {
		if err.Error() == "insufficient permissions to view business members" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get members"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddMember
// @Summary Add a member to a business
// @Tags business-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param request body businesses_dto.AddMemberRequestDTO true "Member data"
// @Success 201 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId}/members [post]
func (c *MembershipController) AddMember(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	businessID, err := uuid.Parse(ctx.Param("businessId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	request := &businesses_dto.AddMemberRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.membershipService.AddMember(businessID, request, user, ctx.ClientIP()); err != nil {
		if err.Error() == "insufficient permissions to manage business members" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Member added"})
}

// ChangeMemberRole
// @Summary Change a member's role
// @Tags business-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param userId path string true "User ID"
// @Param request body businesses_dto.ChangeMemberRoleRequestDTO true "New role"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId}/members/{userId}/role [put]
func (c *MembershipController) ChangeMemberRole(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	businessID, err := uuid.Parse(ctx.Param("businessId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	request := &businesses_dto.ChangeMemberRoleRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err = c.membershipService.ChangeMemberRole(businessID, targetUserID, request.Role, user, ctx.ClientIP())
	if err != nil {
		if err.Error() == "insufficient permissions to manage business members" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member role updated"})
}

// RemoveMember
// @Summary Remove a member from a business
// @Tags business-members
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId}/members/{userId} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	businessID, err := uuid.Parse(ctx.Param("businessId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.membershipService.RemoveMember(businessID, targetUserID, user, ctx.ClientIP()); err != nil {
		if err.Error() == "insufficient permissions to manage business members" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
