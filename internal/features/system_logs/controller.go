package system_logs

import (
	"net/http"
	"strings"

	users_middleware "receipthub/internal/features/users/middleware"
	users_services "receipthub/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SystemLogController struct {
	systemLogService   *SystemLogService
	clientEventService *ClientEventService
	userService        *users_services.UserService
}

// RegisterIngestionRoutes attaches the browser-facing ingestion endpoint.
// No authentication middleware: client errors may fire before sign-in.
// Attribution is best-effort from an optional bearer token.
func (c *SystemLogController) RegisterIngestionRoutes(router *gin.RouterGroup) {
	eventRoutes := router.Group("/system-logs")

	eventRoutes.POST("/businesses/:businessId/client-events", c.SubmitClientEvents)
}

func (c *SystemLogController) RegisterRoutes(router *gin.RouterGroup) {
	// Read endpoints require authentication (handled in main.go)
	logRoutes := router.Group("/system-logs")

	logRoutes.GET("", c.GetSystemLogs)
}

// SubmitClientEvents
// @Summary Submit client events for a business
// @Description Submit one or more browser-originated events (client errors, page views, navigation, performance marks). Validates batch limits, per-IP and per-business rate limits, and individual event requirements.
// @Tags system-logs
// @Accept json
// @Produce json
// @Param businessId path string true "Business ID (UUID format)"
// @Param Authorization header string false "Optional bearer token for user attribution"
// @Param request body SubmitClientEventsRequestDTO true "Events to submit"
// @Success 202 {object} SubmitClientEventsResponseDTO "Events accepted (may include partial rejection)"
// @Failure 400 {object} map[string]string "Invalid request format or batch limits exceeded"
// @Failure 404 {object} map[string]string "Business not found"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /system-logs/businesses/{businessId}/client-events [post]
func (c *SystemLogController) SubmitClientEvents(ctx *gin.Context) {
	businessID, err := uuid.Parse(ctx.Param("businessId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	var request SubmitClientEventsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	clientIP := c.extractClientIP(ctx)
	userID := c.extractOptionalUserID(ctx)

	response, err := c.clientEventService.SubmitEvents(businessID, &request, clientIP, userID)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, response)
}

// GetSystemLogs
// @Summary Get system logs (ADMIN only)
// @Tags system-logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param level query string false "Filter by log level"
// @Param category query string false "Filter by category"
// @Param beforeDate query string false "Only logs before this date (RFC3339 format)" format(date-time)
// @Success 200 {object} GetSystemLogsResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /system-logs [get]
func (c *SystemLogController) GetSystemLogs(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	request := &GetSystemLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.systemLogService.GetSystemLogs(user, request)
	if err != nil {
		if err.Error() == "only administrators can view system logs" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		if validationErr, ok := err.(*ValidationError); ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "code": validationErr.Code})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get system logs"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *SystemLogController) extractOptionalUserID(ctx *gin.Context) *uuid.UUID {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		return nil
	}

	user, err := c.userService.GetUserFromToken(token)
	if err != nil {
		return nil
	}

	return &user.ID
}

func (c *SystemLogController) extractClientIP(ctx *gin.Context) string {
	// Check X-Forwarded-For header first (for proxied requests)
	forwarded := ctx.GetHeader("X-Forwarded-For")
	if forwarded != "" {
		if idx := strings.Index(forwarded, ","); idx != -1 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}

	realIP := ctx.GetHeader("X-Real-IP")
	if realIP != "" {
		return strings.TrimSpace(realIP)
	}

	return ctx.ClientIP()
}

func (c *SystemLogController) handleError(ctx *gin.Context, err error) {
	if validationErr, ok := err.(*ValidationError); ok {
		statusCode := c.getStatusCodeForValidationError(validationErr.Code)

		if validationErr.Code == ErrorRateLimitExceeded {
			ctx.Header("Retry-After", "60")
		}

		ctx.JSON(statusCode, gin.H{
			"error": validationErr.Message,
			"code":  validationErr.Code,
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process events"})
}

func (c *SystemLogController) getStatusCodeForValidationError(errorCode string) int {
	switch errorCode {
	case ErrorBusinessNotFound:
		return http.StatusNotFound
	case ErrorRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}
