package audit_logs

import (
	"encoding/json"
	"log/slog"
	"time"

	"receipthub/internal/storage"
	cache_utils "receipthub/internal/util/cache"

	"github.com/google/uuid"
)

// InsertChannel carries every persisted audit row to live viewer sessions.
const InsertChannel = "receipthub:inserts:audit_logs"

type AuditLogRepository struct {
	pubSub *cache_utils.PubSubService
	logger *slog.Logger
}

// Create persists the row and then publishes it for realtime viewers.
// Publish failures are logged and swallowed: the row is already durable
// and live sessions recover on their next manual refresh.
func (r *AuditLogRepository) Create(auditLog *AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}
	if auditLog.CreatedAt.IsZero() {
		auditLog.CreatedAt = time.Now().UTC()
	}

	if err := storage.GetDb().Create(auditLog).Error; err != nil {
		return err
	}

	payload, err := json.Marshal(auditLog)
	if err != nil {
		r.logger.Error("failed to serialize audit log for publish", slog.String("error", err.Error()))
		return nil
	}

	if err := r.pubSub.Publish(InsertChannel, payload); err != nil {
		r.logger.Error("failed to publish audit log insert", slog.String("error", err.Error()))
	}

	return nil
}

func (r *AuditLogRepository) GetGlobal(limit, offset int, beforeDate *time.Time) ([]*AuditLogDTO, error) {
	return r.query("", nil, limit, offset, beforeDate)
}

func (r *AuditLogRepository) GetByBusiness(
	businessID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	return r.query("al.business_id = ?", []any{businessID}, limit, offset, beforeDate)
}

func (r *AuditLogRepository) GetByActor(
	actorUserID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	return r.query("al.actor_user_id = ?", []any{actorUserID}, limit, offset, beforeDate)
}

func (r *AuditLogRepository) query(
	condition string,
	conditionArgs []any,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	var auditLogs = make([]*AuditLogDTO, 0)

	sql := `
		SELECT
			al.id,
			al.business_id,
			al.actor_user_id,
			al.actor_role,
			al.action,
			al.resource_type,
			al.resource_id,
			al.status,
			al.ip_address,
			al.error_message,
			al.created_at,
			u.display_name as actor_display_name,
			u.email as actor_email,
			b.name as business_name
		FROM audit_logs al
		LEFT JOIN users u ON al.actor_user_id = u.id
		LEFT JOIN businesses b ON al.business_id = b.id`

	args := []any{}
	where := []string{}

	if condition != "" {
		where = append(where, condition)
		args = append(args, conditionArgs...)
	}
	if beforeDate != nil {
		where = append(where, "al.created_at < ?")
		args = append(args, *beforeDate)
	}

	for i, clause := range where {
		if i == 0 {
			sql += " WHERE " + clause
		} else {
			sql += " AND " + clause
		}
	}

	sql += " ORDER BY al.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	err := storage.GetDb().Raw(sql, args...).Scan(&auditLogs).Error

	return auditLogs, err
}

// GetRecent returns the newest rows as storage models, newest first. Viewer
// sessions use this as their initial snapshot before going live.
func (r *AuditLogRepository) GetRecent(limit int) ([]*AuditLog, error) {
	var auditLogs = make([]*AuditLog, 0)

	err := storage.GetDb().
		Order("created_at DESC").
		Limit(limit).
		Find(&auditLogs).Error

	return auditLogs, err
}
