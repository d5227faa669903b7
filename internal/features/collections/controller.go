package collections

import (
	"net/http"

	users_middleware "receipthub/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CollectionController struct {
	collectionService *CollectionService
}

func (c *CollectionController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/businesses/:businessId/collections", c.CreateCollection)
	router.GET("/businesses/:businessId/collections", c.GetCollections)

	collectionRoutes := router.Group("/collections")
	collectionRoutes.GET("/:collectionId", c.GetCollection)
	collectionRoutes.PUT("/:collectionId", c.UpdateCollection)
	collectionRoutes.DELETE("/:collectionId", c.DeleteCollection)
}

// CreateCollection
// @Summary Create a collection in a business
// @Tags collections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param request body CreateCollectionRequestDTO true "Collection data"
// @Success 201 {object} Collection
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId}/collections [post]
func (c *CollectionController) CreateCollection(ctx *gin.Context) {
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

	request := &CreateCollectionRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	collection, err := c.collectionService.CreateCollection(businessID, request, user, ctx.ClientIP())
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, collection)
}

// GetCollections
// @Summary List collections of a business
// @Tags collections
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Success 200 {object} ListCollectionsResponseDTO
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId}/collections [get]
func (c *CollectionController) GetCollections(ctx *gin.Context) {
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

	response, err := c.collectionService.GetCollections(businessID, user)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetCollection
// @Summary Get a collection
// @Tags collections
// @Produce json
// @Security BearerAuth
// @Param collectionId path string true "Collection ID"
// @Success 200 {object} Collection
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /collections/{collectionId} [get]
func (c *CollectionController) GetCollection(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	collectionID, err := uuid.Parse(ctx.Param("collectionId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection ID"})
		return
	}

	collection, err := c.collectionService.GetCollection(collectionID, user)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, collection)
}

// UpdateCollection
// @Summary Update a collection
// @Tags collections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param collectionId path string true "Collection ID"
// @Param request body UpdateCollectionRequestDTO true "Collection data"
// @Success 200 {object} Collection
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /collections/{collectionId} [put]
func (c *CollectionController) UpdateCollection(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	collectionID, err := uuid.Parse(ctx.Param("collectionId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection ID"})
		return
	}

	request := &UpdateCollectionRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	collection, err := c.collectionService.UpdateCollection(collectionID, request, user, ctx.ClientIP())
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, collection)
}

// DeleteCollection
// @Summary Delete a collection
// @Tags collections
// @Produce json
// @Security BearerAuth
// @Param collectionId path string true "Collection ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /collections/{collectionId} [delete]
func (c *CollectionController) DeleteCollection(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	collectionID, err := uuid.Parse(ctx.Param("collectionId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection ID"})
		return
	}

	if err := c.collectionService.DeleteCollection(collectionID, user, ctx.ClientIP()); err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Collection deleted"})
}

func (c *CollectionController) handleError(ctx *gin.Context, err error) {
	switch err.Error() {
	case "insufficient permissions to access business":
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case "collection not found":
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
	}
}
