package system_logs

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	users_enums "receipthub/internal/features/users/enums"
	users_models "receipthub/internal/features/users/models"

	"gorm.io/datatypes"
)

// SystemLogService is the server-side writer for operational events and the
// read surface for administrators.
type SystemLogService struct {
	systemLogRepository *SystemLogRepository
	logger              *slog.Logger
}

// WriteLog records an operational event. Failures are logged and swallowed:
// observability must never fail the operation it observes.
func (s *SystemLogService) WriteLog(
	level LogLevel,
	category LogCategory,
	message string,
	metadata map[string]any,
	options *SystemLogWriteOptions,
) {
	systemLog := &SystemLog{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Category:  category,
		Message:   message,
		Metadata:  marshalMetadata(metadata, s.logger),
	}

	if options != nil {
		systemLog.BusinessID = options.BusinessID
		systemLog.UserID = options.UserID
		systemLog.IPAddress = options.IPAddress
		systemLog.StackTrace = options.StackTrace
		systemLog.ExecutionTimeMs = options.ExecutionTimeMs
	}

	if err := s.systemLogRepository.Create(systemLog); err != nil {
		s.logger.Error("failed to create system log",
			slog.String("category", string(category)),
			slog.String("error", err.Error()))
	}
}

func marshalMetadata(metadata map[string]any, logger *slog.Logger) datatypes.JSON {
	if metadata == nil {
		return nil
	}

	payload, err := json.Marshal(metadata)
	if err != nil {
		logger.Error("failed to serialize system log metadata", slog.String("error", err.Error()))
		return nil
	}

	return datatypes.JSON(payload)
}

func (s *SystemLogService) GetSystemLogs(
	user *users_models.User,
	request *GetSystemLogsRequest,
) (*GetSystemLogsResponse, error) {
	if user.Role != users_enums.UserRoleAdmin {
		return nil, errors.New("only administrators can view system logs")
	}

	if request.Level != nil && !request.Level.IsValid() {
		return nil, &ValidationError{Code: ErrorInvalidLogLevel, Message: "invalid log level", Field: "level"}
	}
	if request.Category != nil && !request.Category.IsValid() {
		return nil, &ValidationError{Code: ErrorInvalidCategory, Message: "invalid log category", Field: "category"}
	}

	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	offset := max(request.Offset, 0)

	systemLogs, err := s.systemLogRepository.GetLogs(request, limit, offset)
	if err != nil {
		return nil, err
	}

	return &GetSystemLogsResponse{SystemLogs: systemLogs, Limit: limit, Offset: offset}, nil
}

// GetRecentLogs feeds viewer session snapshots.
func (s *SystemLogService) GetRecentLogs(limit int) ([]*SystemLog, error) {
	if limit <= 0 || limit > 1000 {
		limit = 500
	}

	return s.systemLogRepository.GetRecent(limit)
}
