package system_logs

import (
	"fmt"
	"time"

	users_middleware "receipthub/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const slowRequestThreshold = 2 * time.Second

// RequestLoggingMiddleware records slow requests and server errors as
// system logs. Goes after the auth middleware so the actor is attributed
// when one is present.
func RequestLoggingMiddleware(systemLogService *SystemLogService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		elapsed := time.Since(start)
		statusCode := ctx.Writer.Status()

		isSlow := elapsed >= slowRequestThreshold
		isServerError := statusCode >= 500
		if !isSlow && !isServerError {
			return
		}

		elapsedMs := elapsed.Milliseconds()

		var userID *uuid.UUID
		if user, isOk := users_middleware.GetUserFromContext(ctx); isOk {
			userID = &user.ID
		}

		metadata := map[string]any{
			"method":     ctx.Request.Method,
			"path":       ctx.FullPath(),
			"statusCode": statusCode,
		}

		options := &SystemLogWriteOptions{
			UserID:          userID,
			IPAddress:       ctx.ClientIP(),
			ExecutionTimeMs: &elapsedMs,
		}

		if isServerError {
			systemLogService.WriteLog(
				LogLevelError,
				CategoryAPI,
				fmt.Sprintf("Request failed with status %d", statusCode),
				metadata,
				options,
			)
			return
		}

		systemLogService.WriteLog(
			LogLevelWarn,
			CategoryPerformance,
			fmt.Sprintf("Slow request: %dms", elapsedMs),
			metadata,
			options,
		)
	}
}
