package logstream

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"receipthub/internal/storage"
	cache_utils "receipthub/internal/util/cache"
)

// LogSource provides the one-time bulk read and the continuous push channel
// for one record kind.
type LogSource interface {
	FetchInitial(limit int) ([]*LogRecord, error)
	SubscribeInserts(onInsert func(*LogRecord)) (Subscription, error)
}

// Subscription ends insert delivery when closed. Close must be idempotent
// and safe when the underlying channel already dropped.
type Subscription interface {
	Close()
}

// Insert channels published by the audit_logs and system_logs repositories.
const (
	auditInsertChannel  = "receipthub:inserts:audit_logs"
	systemInsertChannel = "receipthub:inserts:system_logs"
)

// ValkeyLogSource reads the initial snapshot from Postgres and streams
// subsequent inserts over the Valkey pub/sub channel the writing repository
// publishes on. A dropped channel is not reconnected here; the viewer
// session decides whether to go live again.
type ValkeyLogSource struct {
	kind   RecordKind
	pubSub *cache_utils.PubSubService
	logger *slog.Logger
}

func NewValkeyLogSource(kind RecordKind, pubSub *cache_utils.PubSubService, logger *slog.Logger) *ValkeyLogSource {
	return &ValkeyLogSource{
		kind:   kind,
		pubSub: pubSub,
		logger: logger,
	}
}

func (s *ValkeyLogSource) FetchInitial(limit int) ([]*LogRecord, error) {
	if s.kind == RecordKindAudit {
		return s.fetchInitialAudit(limit)
	}

	return s.fetchInitialSystem(limit)
}

func (s *ValkeyLogSource) fetchInitialAudit(limit int) ([]*LogRecord, error) {
	var rows []*AuditRecordData

	err := storage.GetDb().
		Table("audit_logs").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	records := make([]*LogRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, NewAuditRecord(row))
	}

	return records, nil
}

func (s *ValkeyLogSource) fetchInitialSystem(limit int) ([]*LogRecord, error) {
	var rows []*SystemRecordData

	err := storage.GetDb().
		Table("system_logs").
		Order("timestamp DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch system logs: %w", err)
	}

	records := make([]*LogRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, NewSystemRecord(row))
	}

	return records, nil
}

// SubscribeInserts decodes every published row and hands it to onInsert in
// publish order. Rows that fail to decode are logged and skipped; they are
// still durable in Postgres and reappear on the next manual refresh.
func (s *ValkeyLogSource) SubscribeInserts(onInsert func(*LogRecord)) (Subscription, error) {
	channel := systemInsertChannel
	if s.kind == RecordKindAudit {
		channel = auditInsertChannel
	}

	subscription := s.pubSub.Subscribe(channel, func(payload []byte) {
		record, err := s.decode(payload)
		if err != nil {
			s.logger.Error("failed to decode insert event",
				slog.String("channel", channel),
				slog.String("error", err.Error()))
			return
		}

		onInsert(record)
	})

	return subscription, nil
}

func (s *ValkeyLogSource) decode(payload []byte) (*LogRecord, error) {
	if s.kind == RecordKindAudit {
		var row AuditRecordData
		if err := json.Unmarshal(payload, &row); err != nil {
			return nil, err
		}
		return NewAuditRecord(&row), nil
	}

	var row SystemRecordData
	if err := json.Unmarshal(payload, &row); err != nil {
		return nil, err
	}

	return NewSystemRecord(&row), nil
}
