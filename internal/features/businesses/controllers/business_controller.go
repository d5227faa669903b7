package businesses_controllers

import (
	"net/http"

	businesses_dto "receipthub/internal/features/businesses/dto"
	businesses_models "receipthub/internal/features/businesses/models"
	businesses_services "receipthub/internal/features/businesses/services"
	users_middleware "receipthub/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BusinessController struct {
	businessService *businesses_services.BusinessService
}

func (c *BusinessController) RegisterRoutes(router *gin.RouterGroup) {
	businessRoutes := router.Group("/businesses")

	businessRoutes.POST("", c.CreateBusiness)
	businessRoutes.GET("", c.ListBusinesses)
	businessRoutes.GET("/:businessId", c.GetBusiness)
	businessRoutes.PUT("/:businessId", c.UpdateBusiness)
	businessRoutes.DELETE("/:businessId", c.DeleteBusiness)
}

// CreateBusiness
// @Summary Create a business
// @Tags businesses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body businesses_dto.CreateBusinessRequestDTO true "Business data"
// @Success 201 {object} businesses_dto.BusinessResponseDTO
// @Failure 403 {object} map[string]string
// @Router /businesses [post]
func (c *BusinessController) CreateBusiness(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	request := &businesses_dto.CreateBusinessRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.businessService.CreateBusiness(request, user, ctx.ClientIP())
	if err != nil {
		if err.Error() == "insufficient permissions to create businesses" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create business"})
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// ListBusinesses
// @Summary List businesses visible to the current user
// @Tags businesses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} businesses_dto.ListBusinessesResponseDTO
// @Router /businesses [get]
func (c *BusinessController) ListBusinesses(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	response, err := c.businessService.GetUserBusinesses(user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list businesses"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetBusiness
// @Summary Get a business
// @Tags businesses
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Success 200 {object} businesses_models.Business
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId} [get]
func (c *BusinessController) GetBusiness(ctx *gin.Context) {
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

	business, err := c.businessService.GetBusiness(businessID, user)
	if err != nil {
		if err.Error() == "insufficient permissions to view business" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}

	ctx.JSON(http.StatusOK, business)
}

// UpdateBusiness
// @Summary Update a business
// @Tags businesses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param request body businesses_models.Business true "Business data"
// @Success 200 {object} businesses_models.Business
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId} [put]
func (c *BusinessController) UpdateBusiness(ctx *gin.Context) {
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

	business := &businesses_models.Business{}
	if err := ctx.ShouldBindJSON(business); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, err := c.businessService.UpdateBusiness(businessID, business, user, ctx.ClientIP())
	if err != nil {
		if err.Error() == "insufficient permissions to update business" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update business"})
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DeleteBusiness
// @Summary Delete a business
// @Tags businesses
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId} [delete]
func (c *BusinessController) DeleteBusiness(ctx *gin.Context) {
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

	if err := c.businessService.DeleteBusiness(businessID, user, ctx.ClientIP()); err != nil {
		if err.Error() == "insufficient permissions to delete business" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete business"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Business deleted"})
}
