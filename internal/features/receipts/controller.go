package receipts

import (
	"net/http"

	users_middleware "receipthub/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReceiptController struct {
	receiptService *ReceiptService
}

func (c *ReceiptController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/businesses/:businessId/receipts", c.CreateReceipt)
	router.GET("/businesses/:businessId/receipts", c.GetReceipts)

	receiptRoutes := router.Group("/receipts")
	receiptRoutes.GET("/:receiptId", c.GetReceipt)
	receiptRoutes.PUT("/:receiptId", c.UpdateReceipt)
	receiptRoutes.PUT("/:receiptId/status", c.ChangeReceiptStatus)
	receiptRoutes.DELETE("/:receiptId", c.DeleteReceipt)
}

// CreateReceipt
// @Summary Create a receipt in a business
// @Tags receipts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param request body CreateReceiptRequestDTO true "Receipt data"
// @Success 201 {object} Receipt
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId}/receipts [post]
func (c *ReceiptController) CreateReceipt(ctx *gin.Context) {
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

	request := &CreateReceiptRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := c.receiptService.CreateReceipt(businessID, request, user, ctx.ClientIP())
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, receipt)
}

// GetReceipts
// @Summary List receipts of a business
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param collectionId query string false "Filter by collection"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} ListReceiptsResponseDTO
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId}/receipts [get]
func (c *ReceiptController) GetReceipts(ctx *gin.Context) {
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

	request := &ListReceiptsRequestDTO{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.receiptService.GetReceipts(businessID, request, user)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetReceipt
// @Summary Get a receipt
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param receiptId path string true "Receipt ID"
// @Success 200 {object} Receipt
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /receipts/{receiptId} [get]
func (c *ReceiptController) GetReceipt(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	receiptID, err := uuid.Parse(ctx.Param("receiptId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid receipt ID"})
		return
	}

	receipt, err := c.receiptService.GetReceipt(receiptID, user)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, receipt)
}

// UpdateReceipt
// @Summary Update a receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param receiptId path string true "Receipt ID"
// @Param request body UpdateReceiptRequestDTO true "Receipt data"
// @Success 200 {object} Receipt
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /receipts/{receiptId} [put]
func (c *ReceiptController) UpdateReceipt(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	receiptID, err := uuid.Parse(ctx.Param("receiptId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid receipt ID"})
		return
	}

	request := &UpdateReceiptRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := c.receiptService.UpdateReceipt(receiptID, request, user, ctx.ClientIP())
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, receipt)
}

// ChangeReceiptStatus
// @Summary Approve or reject a receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param receiptId path string true "Receipt ID"
// @Param request body ChangeReceiptStatusRequestDTO true "New status"
// @Success 200 {object} Receipt
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /receipts/{receiptId}/status [put]
func (c *ReceiptController) ChangeReceiptStatus(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	receiptID, err := uuid.Parse(ctx.Param("receiptId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid receipt ID"})
		return
	}

	request := &ChangeReceiptStatusRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := c.receiptService.ChangeReceiptStatus(receiptID, request.Status, user, ctx.ClientIP())
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, receipt)
}

// DeleteReceipt
// @Summary Delete a receipt
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param receiptId path string true "Receipt ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /receipts/{receiptId} [delete]
func (c *ReceiptController) DeleteReceipt(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	receiptID, err := uuid.Parse(ctx.Param("receiptId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid receipt ID"})
		return
	}

	if err := c.receiptService.DeleteReceipt(receiptID, user, ctx.ClientIP()); err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Receipt deleted"})
}

func (c *ReceiptController) handleError(ctx *gin.Context, err error) {
	switch err.Error() {
	case "insufficient permissions to access business",
		"insufficient permissions to change receipt status",
		"insufficient permissions to delete receipt":
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case "receipt not found":
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case "invalid receipt status":
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
	}
}
