package audit_logs

import (
	"time"

	"github.com/google/uuid"
)

type GetAuditLogsRequest struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"beforeDate" json:"beforeDate"`
}

type GetAuditLogsResponse struct {
	AuditLogs []*AuditLogDTO `json:"auditLogs"`
	Limit     int            `json:"limit"`
	Offset    int            `json:"offset"`
}

type AuditLogDTO struct {
	ID               uuid.UUID  `json:"id"               gorm:"column:id"`
	BusinessID       *uuid.UUID `json:"businessId"       gorm:"column:business_id"`
	ActorUserID      *uuid.UUID `json:"actorUserId"      gorm:"column:actor_user_id"`
	ActorRole        string     `json:"actorRole"        gorm:"column:actor_role"`
	Action           string     `json:"action"           gorm:"column:action"`
	ResourceType     string     `json:"resourceType"     gorm:"column:resource_type"`
	ResourceID       string     `json:"resourceId"       gorm:"column:resource_id"`
	Status           string     `json:"status"           gorm:"column:status"`
	IPAddress        string     `json:"ipAddress"        gorm:"column:ip_address"`
	ErrorMessage     string     `json:"errorMessage"     gorm:"column:error_message"`
	CreatedAt        time.Time  `json:"createdAt"        gorm:"column:created_at"`
	ActorDisplayName *string    `json:"actorDisplayName" gorm:"column:actor_display_name"`
	ActorEmail       *string    `json:"actorEmail"       gorm:"column:actor_email"`
	BusinessName     *string    `json:"businessName"     gorm:"column:business_name"`
}
