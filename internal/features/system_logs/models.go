package system_logs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SystemLog struct {
	ID              uuid.UUID      `json:"id"              gorm:"column:id"`
	Timestamp       time.Time      `json:"timestamp"       gorm:"column:timestamp"`
	Level           LogLevel       `json:"level"           gorm:"column:level"`
	Category        LogCategory    `json:"category"        gorm:"column:category"`
	Message         string         `json:"message"         gorm:"column:message"`
	Metadata        datatypes.JSON `json:"metadata"        gorm:"column:metadata"`
	BusinessID      *uuid.UUID     `json:"businessId"      gorm:"column:business_id"`
	UserID          *uuid.UUID     `json:"userId"          gorm:"column:user_id"`
	IPAddress       string         `json:"ipAddress"       gorm:"column:ip_address"`
	StackTrace      string         `json:"stackTrace"      gorm:"column:stack_trace"`
	ExecutionTimeMs *int64         `json:"executionTimeMs" gorm:"column:execution_time_ms"`
	CreatedAt       time.Time      `json:"createdAt"       gorm:"column:created_at"`
}

func (SystemLog) TableName() string {
	return "system_logs"
}
