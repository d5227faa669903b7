package audit_logs

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	users_enums "receipthub/internal/features/users/enums"
	users_interfaces "receipthub/internal/features/users/interfaces"
	users_models "receipthub/internal/features/users/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
	logger             *slog.Logger
}

// WriteAuditLog records an event reported by a feature service. Failures are
// logged, never propagated: the audit trail must not break the operation it
// describes.
func (s *AuditLogService) WriteAuditLog(event *users_interfaces.AuditEvent) {
	auditLog := &AuditLog{
		BusinessID:     event.BusinessID,
		ActorUserID:    event.ActorUserID,
		ActorRole:      event.ActorRole,
		Action:         event.Action,
		ResourceType:   event.ResourceType,
		ResourceID:     event.ResourceID,
		Status:         event.Status,
		IPAddress:      event.IPAddress,
		ErrorMessage:   event.ErrorMessage,
		BeforeSnapshot: marshalSnapshot(event.Before, s.logger),
		AfterSnapshot:  marshalSnapshot(event.After, s.logger),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.auditLogRepository.Create(auditLog); err != nil {
		s.logger.Error("failed to create audit log",
			slog.String("action", event.Action),
			slog.String("error", err.Error()))
	}
}

func marshalSnapshot(snapshot map[string]any, logger *slog.Logger) datatypes.JSON {
	if snapshot == nil {
		return nil
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("failed to serialize audit snapshot", slog.String("error", err.Error()))
		return nil
	}

	return datatypes.JSON(payload)
}

func (s *AuditLogService) GetGlobalAuditLogs(
	user *users_models.User,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if user.Role != users_enums.UserRoleAdmin {
		return nil, errors.New("only administrators can view global audit logs")
	}

	limit, offset := normalizePage(request)

	auditLogs, err := s.auditLogRepository.GetGlobal(limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{AuditLogs: auditLogs, Limit: limit, Offset: offset}, nil
}

func (s *AuditLogService) GetUserAuditLogs(
	requestingUser *users_models.User,
	targetUserID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if requestingUser.Role != users_enums.UserRoleAdmin && requestingUser.ID != targetUserID {
		return nil, errors.New("you can only view your own audit logs")
	}

	limit, offset := normalizePage(request)

	auditLogs, err := s.auditLogRepository.GetByActor(targetUserID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{AuditLogs: auditLogs, Limit: limit, Offset: offset}, nil
}

func (s *AuditLogService) GetBusinessAuditLogs(
	user *users_models.User,
	businessID uuid.UUID,
	canAccessBusiness bool,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if user.Role != users_enums.UserRoleAdmin && !canAccessBusiness {
		return nil, errors.New("insufficient permissions to view business audit logs")
	}

	limit, offset := normalizePage(request)

	auditLogs, err := s.auditLogRepository.GetByBusiness(businessID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{AuditLogs: auditLogs, Limit: limit, Offset: offset}, nil
}

// GetRecentLogs feeds viewer session snapshots.
func (s *AuditLogService) GetRecentLogs(limit int) ([]*AuditLog, error) {
	if limit <= 0 || limit > 1000 {
		limit = 500
	}

	return s.auditLogRepository.GetRecent(limit)
}

func normalizePage(request *GetAuditLogsRequest) (int, int) {
	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	return limit, max(request.Offset, 0)
}
