package logstream

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	users_middleware "receipthub/internal/features/users/middleware"
	users_models "receipthub/internal/features/users/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LogStreamController struct {
	logStreamService *LogStreamService
}

func (c *LogStreamController) RegisterRoutes(router *gin.RouterGroup) {
	// All log stream endpoints require authentication (handled in main.go);
	// the service additionally gates on the system-logs permission.
	streamRoutes := router.Group("/log-streams")

	streamRoutes.POST("", c.OpenSession)
	streamRoutes.GET("/:sessionId", c.GetState)
	streamRoutes.DELETE("/:sessionId", c.CloseSession)
	streamRoutes.POST("/:sessionId/live", c.StartLive)
	streamRoutes.DELETE("/:sessionId/live", c.StopLive)
	streamRoutes.POST("/:sessionId/pause", c.TogglePause)
	streamRoutes.POST("/:sessionId/scroll-to-top", c.ScrollToTop)
	streamRoutes.PUT("/:sessionId/scroll-position", c.SetScrollPosition)
	streamRoutes.PUT("/:sessionId/filters", c.SetFilters)
	streamRoutes.DELETE("/:sessionId/filters", c.ClearFilters)
	streamRoutes.GET("/:sessionId/page", c.GetPage)
	streamRoutes.POST("/:sessionId/refresh", c.Refresh)
	streamRoutes.GET("/:sessionId/export", c.Export)
}

// OpenSession
// @Summary Open a log stream viewer session
// @Description Creates a viewer session over the audit or system log stream: initial snapshot plus live inserts. One session per user per kind; a new one replaces the old.
// @Tags log-streams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OpenSessionRequestDTO true "Stream kind: audit or system"
// @Success 201 {object} SessionResponseDTO
// @Failure 403 {object} map[string]string
// @Router /log-streams [post]
func (c *LogStreamController) OpenSession(ctx *gin.Context) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return
	}

	request := &OpenSessionRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session, err := c.logStreamService.OpenSession(user, request.Kind)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &SessionResponseDTO{
		SessionID: session.ID.String(),
		State:     session.Controller.State(),
	})
}

// GetState
// @Summary Get the current view state of a session
// @Tags log-streams
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} SessionResponseDTO
// @Failure 404 {object} map[string]string
// @Router /log-streams/{sessionId} [get]
func (c *LogStreamController) GetState(ctx *gin.Context) {
	session, isOk := c.resolveSession(ctx)
	if !isOk {
		return
	}

	ctx.JSON(http.StatusOK, &SessionResponseDTO{
		SessionID: session.ID.String(),
		State:     session.Controller.State(),
	})
}

// CloseSession
// @Summary Close a viewer session
// @Tags log-streams
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /log-streams/{sessionId} [delete]
func (c *LogStreamController) CloseSession(ctx *gin.Context) {
	user, sessionID, isOk := c.parseSessionRequest(ctx)
	if !isOk {
		return
	}

	if err := c.logStreamService.CloseSession(sessionID, user); err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}

// StartLive
// @Summary Resume live insert delivery for a session
// @Tags log-streams
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} SessionResponseDTO
// @Failure 404 {object} map[string]string
// @Router /log-streams/{sessionId}/live [post]
func (c *LogStreamController) StartLive(ctx *gin.Context) {
	session, isOk := c.resolveSession(ctx)
	if !isOk {
		return
	}

	if err := session.Controller.StartLive(); err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to subscribe to live inserts"})
		return
	}

	ctx.JSON(http.StatusOK, &SessionResponseDTO{
		SessionID: session.ID.String(),
		State:     session.Controller.State(),
	})
}

// StopLive
// @Summary Stop live insert delivery for a session
// @Tags log-streams
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} SessionResponseDTO
// @Failure 404 {object} map[string]string
// @Router /log-streams/{sessionId}/live [delete]
func (c *LogStreamController) StopLive(ctx *gin.Context) {
	session, isOk := c.resolveSession(ctx)
	if !isOk {
		return
	}

	session.Controller.StopLive()

	ctx.JSON(http.StatusOK, &SessionResponseDTO{
		SessionID: session.ID.String(),
		State:     session.Controller.State(),
	})
}

// TogglePause
// @Summary Toggle the paused flag of a session
// @Description While paused, incoming records still accumulate; only the "new logs" indicator changes. Resuming clears the pending count.
// @Tags log-streams
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} TogglePauseResponseDTO
// @Failure 404 {object} map[string]string
// @Router /log-streams/{sessionId}/pause [post]
func (c *LogStreamController) TogglePause(ctx *gin.Context) {
	session, isOk := c.resolveSession(ctx)
	if !isOk {
		return
	}

	isPaused := session.Controller.TogglePause()

	ctx.JSON(http.StatusOK, &TogglePauseResponseDTO{
		IsPaused: isPaused,
		State:    session.Controller.State(),
	})
}

// ScrollToTop
// @Summary Clear the pending-records indicator
// @Tags log-streams
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} SessionResponseDTO
// @Failure 404 {object} map[string]string
// @Router /log-streams/{sessionId}/scroll-to-top [post]
func (c *LogStreamController) ScrollToTop(ctx *gin.Context) {
	session, isOk := c.resolveSession(ctx)
	if !isOk {
		return
	}

	session.Controller.ScrollToTop()

	ctx.JSON(http.StatusOK, &SessionResponseDTO{
		SessionID: session.ID.String(),
		State:     session.Controller.State(),
	})
}

// SetScrollPosition
// @Summary Report whether the viewer is scrolled to the top
// @Tags log-streams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param request body ScrollPositionRequestDTO true "Scroll position"
// @Success 200 {object} SessionResponseDTO
// @Failure 404 {object} map[string]string
// @Router /log-streams/{sessionId}/scroll-position [put]
func (c *LogStreamController) SetScrollPosition(ctx *gin.Context) {
	session, isOk := c.resolveSession(ctx)
	if !isOk {
		return
	}

	request := &ScrollPositionRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session.Controller.SetScrollAtTop(request.AtTop)

	ctx.JSON(http.StatusOK, &SessionResponseDTO{
		SessionID: session.ID.String(),
		State:     session.Controller.State(),
	})
}

// SetFilters
// @Summary Replace the session's filter criteria
// @Description Replaces the criteria wholesale and resets to page 1. Filtering runs over the in-memory sequence; no records are discarded.
// @Tags log-streams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param request body SetFiltersRequestDTO true "Filter criteria"
// @Success 200 {object} SessionResponseDTO
// @Failure 404 {object} map[string]string
// @Router /log-streams/{sessionId}/filters [put]
func (c *LogStreamController) SetFilters(ctx *gin.Context) {
	session, isOk := c.resolveSession(ctx)
	if !isOk {
		return
	}

	request := &SetFiltersRequestDTO{}
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session.Controller.SetFilters(request.ToCriteria())

	ctx.JSON(http.StatusOK, &SessionResponseDTO{
		SessionID: session.ID.String(),
		State:     session.Controller.State(),
	})
}

// ClearFilters
// @Summary Clear the session's filter criteria
// @Tags log-streams
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} SessionResponseDTO
// @Failure 404 {object} map[string]string
// @Router /log-streams/{sessionId}/filters [delete]
func (c *LogStreamController) ClearFilters(ctx *gin.Context) {
	session, isOk := c.resolveSession(ctx)
	if !isOk {
		return
	}

	session.Controller.ClearFilters()

	ctx.JSON(http.StatusOK, &SessionResponseDTO{
		SessionID: session.ID.String(),
		State:     session.Controller.State(),
	})
}

// GetPage
// @Summary Get a page of the filtered view
// @Description Out-of-range page numbers clamp to the valid range instead of erroring.
// @Tags log-streams
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} GetPageResponseDTO
// @Failure 404 {object} map[string]string
// @Router /log-streams/{sessionId}/page [get]
func (c *LogStreamController) GetPage(ctx *gin.Context) {
	session, isOk := c.resolveSession(ctx)
	if !isOk {
		return
	}

	page := 1
	if pageParam := ctx.Query("page"); pageParam != "" {
		parsed, err := strconv.Atoi(pageParam)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page number"})
			return
		}
		page = parsed
	}

	records, resolvedPage, totalPages := session.Controller.GetPage(page)

	ctx.JSON(http.StatusOK, &GetPageResponseDTO{
		Records:    records,
		Page:       resolvedPage,
		TotalPages: totalPages,
		PageSize:   PageSize,
	})
}

// Refresh
// @Summary Replace the session's sequence with a fresh snapshot
// @Tags log-streams
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} SessionResponseDTO
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /log-streams/{sessionId}/refresh [post]
func (c *LogStreamController) Refresh(ctx *gin.Context) {
	session, isOk := c.resolveSession(ctx)
	if !isOk {
		return
	}

	if err := session.Controller.Refresh(); err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh log stream"})
		return
	}

	ctx.JSON(http.StatusOK, &SessionResponseDTO{
		SessionID: session.ID.String(),
		State:     session.Controller.State(),
	})
}

// Export
// @Summary Export the filtered view as CSV
// @Tags log-streams
// @Produce text/csv
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} map[string]string
// @Router /log-streams/{sessionId}/export [get]
func (c *LogStreamController) Export(ctx *gin.Context) {
	session, isOk := c.resolveSession(ctx)
	if !isOk {
		return
	}

	payload, err := session.Controller.ExportCurrentView()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export log stream"})
		return
	}

	fileName := fmt.Sprintf("%s-logs-%s.csv", session.Kind, time.Now().UTC().Format("2006-01-02"))
	ctx.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	ctx.Data(http.StatusOK, "text/csv", payload)
}

func (c *LogStreamController) parseSessionRequest(ctx *gin.Context) (*users_models.User, uuid.UUID, bool) {
	user, isOk := users_middleware.GetUserFromContext(ctx)
	if !isOk {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type in context"})
		return nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(ctx.Param("sessionId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return nil, uuid.Nil, false
	}

	return user, sessionID, true
}

func (c *LogStreamController) resolveSession(ctx *gin.Context) (*ViewerSession, bool) {
	user, sessionID, isOk := c.parseSessionRequest(ctx)
	if !isOk {
		return nil, false
	}

	session, err := c.logStreamService.GetSession(sessionID, user)
	if err != nil {
		c.handleError(ctx, err)
		return nil, false
	}

	return session, true
}

func (c *LogStreamController) handleError(ctx *gin.Context, err error) {
	switch err.Error() {
	case "insufficient permissions to view log streams":
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case "log stream session not found", "log stream session belongs to another user":
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Log stream session not found"})
	case "invalid log stream kind":
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to open log stream"})
	}
}
