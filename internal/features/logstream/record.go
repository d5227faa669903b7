package logstream

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RecordKind discriminates the two log variants a viewer session can stream.
type RecordKind string

const (
	RecordKindAudit  RecordKind = "audit"
	RecordKindSystem RecordKind = "system"
)

func (k RecordKind) IsValid() bool {
	return k == RecordKindAudit || k == RecordKindSystem
}

// Profile is the resolved human identity behind a record's user id.
type Profile struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// AuditRecordData mirrors the audit_logs row shape. Field tags match both
// the table columns and the pub/sub JSON payload so one struct serves the
// initial snapshot scan and realtime insert decoding.
type AuditRecordData struct {
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

// SystemRecordData mirrors the system_logs row shape.
type SystemRecordData struct {
	ID              uuid.UUID      `json:"id"              gorm:"column:id"`
	Timestamp       time.Time      `json:"timestamp"       gorm:"column:timestamp"`
	Level           string         `json:"level"           gorm:"column:level"`
	Category        string         `json:"category"        gorm:"column:category"`
	Message         string         `json:"message"         gorm:"column:message"`
	Metadata        datatypes.JSON `json:"metadata"        gorm:"column:metadata"`
	BusinessID      *uuid.UUID     `json:"businessId"      gorm:"column:business_id"`
	UserID          *uuid.UUID     `json:"userId"          gorm:"column:user_id"`
	IPAddress       string         `json:"ipAddress"       gorm:"column:ip_address"`
	StackTrace      string         `json:"stackTrace"      gorm:"column:stack_trace"`
	ExecutionTimeMs *int64         `json:"executionTimeMs" gorm:"column:execution_time_ms"`
}

// LogRecord is a tagged union over the two variants. Exactly one of Audit
// and System is set, matching Kind.
type LogRecord struct {
	Kind    RecordKind        `json:"kind"`
	Audit   *AuditRecordData  `json:"audit,omitempty"`
	System  *SystemRecordData `json:"system,omitempty"`
	Profile *Profile          `json:"profile,omitempty"`
}

func NewAuditRecord(data *AuditRecordData) *LogRecord {
	return &LogRecord{Kind: RecordKindAudit, Audit: data}
}

func NewSystemRecord(data *SystemRecordData) *LogRecord {
	return &LogRecord{Kind: RecordKindSystem, System: data}
}

func (r *LogRecord) ID() uuid.UUID {
	if r.Kind == RecordKindAudit {
		return r.Audit.ID
	}

	return r.System.ID
}

func (r *LogRecord) Timestamp() time.Time {
	if r.Kind == RecordKindAudit {
		return r.Audit.CreatedAt
	}

	return r.System.Timestamp
}

// UserID returns the id the Profile Resolver should look up, nil when the
// record was produced without an acting user.
func (r *LogRecord) UserID() *uuid.UUID {
	if r.Kind == RecordKindAudit {
		return r.Audit.ActorUserID
	}

	return r.System.UserID
}

func (r *LogRecord) IPAddress() string {
	if r.Kind == RecordKindAudit {
		return r.Audit.IPAddress
	}

	return r.System.IPAddress
}

// DisplayUser renders the record's actor for export and search: resolved
// profile name first, "System" for actorless records, "Unknown" when
// resolution failed or found no match.
func (r *LogRecord) DisplayUser() string {
	if r.Profile != nil && r.Profile.DisplayName != "" {
		return r.Profile.DisplayName
	}
	if r.Profile != nil && r.Profile.Email != "" {
		return r.Profile.Email
	}
	if r.UserID() == nil {
		return "System"
	}

	return "Unknown"
}
