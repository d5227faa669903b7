package users_interfaces

import (
	"github.com/google/uuid"
)

// AuditEvent is the shape every feature service reports to the audit trail.
// Before/After hold entity snapshots for change tracking and may be nil.
type AuditEvent struct {
	Action       string
	ResourceType string
	ResourceID   string
	Status       string
	ActorUserID  *uuid.UUID
	ActorRole    string
	BusinessID   *uuid.UUID
	IPAddress    string
	ErrorMessage string
	Before       map[string]any
	After        map[string]any
}

type AuditLogWriter interface {
	WriteAuditLog(event *AuditEvent)
}

const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
	AuditStatusDenied  = "denied"
)
