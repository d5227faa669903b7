package audit_logs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	ID             uuid.UUID      `json:"id"             gorm:"column:id"`
	BusinessID     *uuid.UUID     `json:"businessId"     gorm:"column:business_id"`
	ActorUserID    *uuid.UUID     `json:"actorUserId"    gorm:"column:actor_user_id"`
	ActorRole      string         `json:"actorRole"      gorm:"column:actor_role"`
	Action         string         `json:"action"         gorm:"column:action"`
	ResourceType   string         `json:"resourceType"   gorm:"column:resource_type"`
	ResourceID     string         `json:"resourceId"     gorm:"column:resource_id"`
	Status         string         `json:"status"         gorm:"column:status"`
	IPAddress      string         `json:"ipAddress"      gorm:"column:ip_address"`
	ErrorMessage   string         `json:"errorMessage"   gorm:"column:error_message"`
	BeforeSnapshot datatypes.JSON `json:"beforeSnapshot" gorm:"column:before_snapshot"`
	AfterSnapshot  datatypes.JSON `json:"afterSnapshot"  gorm:"column:after_snapshot"`
	CreatedAt      time.Time      `json:"createdAt"      gorm:"column:created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
