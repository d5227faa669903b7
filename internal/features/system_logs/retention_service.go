package system_logs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"receipthub/internal/config"
)

// RetentionService trims system logs past the retention window. Audit logs
// are exempt: the audit trail is kept indefinitely.
type RetentionService struct {
	systemLogRepository *SystemLogRepository
	logger              *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

const (
	retentionCleanupInterval = 1 * time.Hour
	retentionWindow          = 90 * 24 * time.Hour
)

func (s *RetentionService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting system log retention worker",
		slog.Duration("interval", retentionCleanupInterval),
		slog.Duration("window", retentionWindow))

	s.wg.Add(1)
	go s.retentionWorker()
}

func (s *RetentionService) ExecuteAllTasksForTest() error {
	return s.cleanupExpiredLogs()
}

func (s *RetentionService) retentionWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(retentionCleanupInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Retention worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Retention worker shutting down")
			return

		case <-ticker.C:
			if err := s.cleanupExpiredLogs(); err != nil {
				s.logger.Error("Error during retention cleanup", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *RetentionService) cleanupExpiredLogs() error {
	cutoff := time.Now().UTC().Add(-retentionWindow)

	deleted, err := s.systemLogRepository.DeleteOlderThan(cutoff)
	if err != nil {
		return err
	}

	if deleted > 0 {
		s.logger.Info("Deleted expired system logs",
			slog.Int64("deleted", deleted),
			slog.Time("cutoff", cutoff))
	}

	return nil
}
