package system_logs

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"receipthub/internal/config"
	cache_utils "receipthub/internal/util/cache"
)

// SystemLogWorkerService decouples event producers from Postgres writes.
//
// ARCHITECTURE:
// - Producers append to an in-memory accumulation buffer
// - A flush worker moves the buffer to a shared Valkey queue every second
// - A drain worker dequeues batches from Valkey and writes them to Postgres
//
// MULTI-INSTANCE DEPLOYMENT:
// Any API instance may call QueueLog/QueueLogs; StartWorkers should run on
// ONE instance only so batches are not drained twice.
type SystemLogWorkerService struct {
	systemLogRepository *SystemLogRepository
	queueService        *cache_utils.ValkeyQueueService
	logger              *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	accumulationMutex sync.Mutex
	accumulatedLogs   []*SystemLog
}

const (
	drainInterval = 1 * time.Second
	flushInterval = 1 * time.Second

	drainBatchSize = 500

	eventQueueKey = "receipthub:system_logs:queue"
)

func NewSystemLogWorkerService(
	systemLogRepository *SystemLogRepository,
	logger *slog.Logger,
) *SystemLogWorkerService {
	return &SystemLogWorkerService{
		systemLogRepository: systemLogRepository,
		queueService:        cache_utils.NewValkeyQueueService(),
		logger:              logger,
		accumulatedLogs:     make([]*SystemLog, 0, drainBatchSize),
	}
}

func (s *SystemLogWorkerService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting system log workers",
		slog.Duration("flushInterval", flushInterval),
		slog.Duration("drainInterval", drainInterval),
		slog.Int("drainBatchSize", drainBatchSize))

	s.wg.Add(2)
	go s.accumulationFlushWorker()
	go s.queueDrainWorker()
}

// QueueLogs buffers validated events; the flush worker picks them up within
// a second.
func (s *SystemLogWorkerService) QueueLogs(systemLogs []*SystemLog) {
	if len(systemLogs) == 0 {
		return
	}

	s.accumulationMutex.Lock()
	defer s.accumulationMutex.Unlock()

	s.accumulatedLogs = append(s.accumulatedLogs, systemLogs...)
}

func (s *SystemLogWorkerService) QueueLog(systemLog *SystemLog) {
	if systemLog == nil {
		return
	}

	s.QueueLogs([]*SystemLog{systemLog})
}

// ExecuteBackgroundTasksForTest flushes and drains once, blocking, so tests
// do not wait on tickers.
func (s *SystemLogWorkerService) ExecuteBackgroundTasksForTest() {
	s.flushAccumulatedLogs()
	s.drainQueueToRepository()
}

func (s *SystemLogWorkerService) accumulationFlushWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("System log flush worker shutting down due to shutdown signal")
			s.flushAccumulatedLogs()
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("System log flush worker shutting down")
			s.flushAccumulatedLogs()
			return

		case <-ticker.C:
			s.flushAccumulatedLogs()
		}
	}
}

func (s *SystemLogWorkerService) queueDrainWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("System log drain worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("System log drain worker shutting down")
			return

		case <-ticker.C:
			s.drainQueueToRepository()
		}
	}
}

func (s *SystemLogWorkerService) flushAccumulatedLogs() {
	s.accumulationMutex.Lock()
	logsToFlush := s.accumulatedLogs
	s.accumulatedLogs = make([]*SystemLog, 0, drainBatchSize)
	s.accumulationMutex.Unlock()

	if len(logsToFlush) == 0 {
		return
	}

	serializedLogs := make([][]byte, 0, len(logsToFlush))
	for _, systemLog := range logsToFlush {
		data, err := json.Marshal(systemLog)
		if err != nil {
			s.logger.Error("failed to marshal system log during flush",
				slog.String("logId", systemLog.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		serializedLogs = append(serializedLogs, data)
	}

	if len(serializedLogs) == 0 {
		return
	}

	if err := s.queueService.EnqueueBatch(eventQueueKey, serializedLogs); err != nil {
		s.logger.Error("failed to flush system logs to Valkey",
			slog.Int("logsCount", len(serializedLogs)),
			slog.String("error", err.Error()))
	}
}

func (s *SystemLogWorkerService) drainQueueToRepository() {
	serializedLogs, err := s.queueService.DequeueBatch(eventQueueKey, drainBatchSize)
	if err != nil {
		s.logger.Error("failed to dequeue system logs from Valkey", slog.String("error", err.Error()))
		return
	}

	if len(serializedLogs) == 0 {
		return
	}

	var systemLogs []*SystemLog
	for _, data := range serializedLogs {
		var systemLog SystemLog

		if err := json.Unmarshal(data, &systemLog); err != nil {
			s.logger.Error("failed to unmarshal system log from Valkey", slog.String("error", err.Error()))
			continue
		}

		systemLogs = append(systemLogs, &systemLog)
	}

	if len(systemLogs) == 0 {
		return
	}

	startTime := time.Now().UTC()
	if err := s.systemLogRepository.CreateBatch(systemLogs); err != nil {
		s.logger.Error("failed to store system log batch",
			slog.Int("totalLogs", len(systemLogs)),
			slog.Duration("duration", time.Since(startTime)),
			slog.String("error", err.Error()))
	}
}
