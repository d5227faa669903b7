package system_logs

import (
	"encoding/json"
	"log/slog"
	"time"

	"receipthub/internal/storage"
	cache_utils "receipthub/internal/util/cache"

	"github.com/google/uuid"
)

// InsertChannel carries every persisted system log row to live viewer sessions.
const InsertChannel = "receipthub:inserts:system_logs"

type SystemLogRepository struct {
	pubSub *cache_utils.PubSubService
	logger *slog.Logger
}

func (r *SystemLogRepository) Create(systemLog *SystemLog) error {
	if systemLog.ID == uuid.Nil {
		systemLog.ID = uuid.New()
	}
	if systemLog.CreatedAt.IsZero() {
		systemLog.CreatedAt = time.Now().UTC()
	}
	if systemLog.Timestamp.IsZero() {
		systemLog.Timestamp = systemLog.CreatedAt
	}

	if err := storage.GetDb().Create(systemLog).Error; err != nil {
		return err
	}

	r.publish(systemLog)

	return nil
}

// CreateBatch inserts the whole batch in one statement, then publishes each
// row so live sessions see them individually.
func (r *SystemLogRepository) CreateBatch(systemLogs []*SystemLog) error {
	if len(systemLogs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, systemLog := range systemLogs {
		if systemLog.ID == uuid.Nil {
			systemLog.ID = uuid.New()
		}
		if systemLog.CreatedAt.IsZero() {
			systemLog.CreatedAt = now
		}
		if systemLog.Timestamp.IsZero() {
			systemLog.Timestamp = systemLog.CreatedAt
		}
	}

	if err := storage.GetDb().Create(systemLogs).Error; err != nil {
		return err
	}

	for _, systemLog := range systemLogs {
		r.publish(systemLog)
	}

	return nil
}

func (r *SystemLogRepository) publish(systemLog *SystemLog) {
	payload, err := json.Marshal(systemLog)
	if err != nil {
		r.logger.Error("failed to serialize system log for publish", slog.String("error", err.Error()))
		return
	}

	if err := r.pubSub.Publish(InsertChannel, payload); err != nil {
		r.logger.Error("failed to publish system log insert", slog.String("error", err.Error()))
	}
}

func (r *SystemLogRepository) GetLogs(request *GetSystemLogsRequest, limit, offset int) ([]*SystemLog, error) {
	var systemLogs = make([]*SystemLog, 0)

	query := storage.GetDb().Model(&SystemLog{})

	if request.Level != nil {
		query = query.Where("level = ?", *request.Level)
	}
	if request.Category != nil {
		query = query.Where("category = ?", *request.Category)
	}
	if request.BeforeDate != nil {
		query = query.Where("timestamp < ?", *request.BeforeDate)
	}

	err := query.
		Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&systemLogs).Error

	return systemLogs, err
}

// GetRecent returns the newest rows, newest first. Viewer sessions use this
// as their initial snapshot before going live.
func (r *SystemLogRepository) GetRecent(limit int) ([]*SystemLog, error) {
	var systemLogs = make([]*SystemLog, 0)

	err := storage.GetDb().
		Order("timestamp DESC").
		Limit(limit).
		Find(&systemLogs).Error

	return systemLogs, err
}

// DeleteOlderThan removes rows past the retention window, returning how many
// were deleted.
func (r *SystemLogRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := storage.GetDb().
		Where("timestamp < ?", cutoff).
		Delete(&SystemLog{})

	return result.RowsAffected, result.Error
}
