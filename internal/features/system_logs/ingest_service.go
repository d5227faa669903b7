package system_logs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	businesses_models "receipthub/internal/features/businesses/models"
	businesses_services "receipthub/internal/features/businesses/services"
	rate_limit "receipthub/internal/util/rate_limit"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"gorm.io/datatypes"
)

const (
	EventsBurstMultiplier = 5 // 5x base limit for burst handling

	MaxBatchSize      = 100             // Maximum number of events per batch
	MaxBatchSizeBytes = 1 * 1024 * 1024 // 1MB maximum batch size
	MaxEventSizeBytes = 32 * 1024       // 32KB per event, stack traces included

	// In-process per-IP limiter, a cheap first line in front of the shared
	// Valkey bucket.
	perIPEventsPerSecond = 50
	perIPBurst           = 200
	ipLimiterMaxIdle     = 10 * time.Minute
)

// ClientEventService validates and queues browser-originated events
// (client errors, page views, navigation, performance marks).
type ClientEventService struct {
	businessService *businesses_services.BusinessService
	rateLimiter     *rate_limit.RateLimiter
	workerService   *SystemLogWorkerService
	logger          *slog.Logger

	ipLimitersMutex sync.Mutex
	ipLimiters      map[string]*ipLimiterEntry
}

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (s *ClientEventService) SubmitEvents(
	businessID uuid.UUID,
	request *SubmitClientEventsRequestDTO,
	clientIP string,
	userID *uuid.UUID,
) (*SubmitClientEventsResponseDTO, error) {
	business, err := s.businessService.GetBusinessByIDCached(businessID)
	if err != nil {
		return nil, &ValidationError{
			Code:    ErrorBusinessNotFound,
			Message: "business not found",
		}
	}

	if err := s.validateBatchLimits(request, business); err != nil {
		return nil, err
	}

	if !s.allowIP(clientIP) {
		return nil, &ValidationError{
			Code:    ErrorRateLimitExceeded,
			Message: "too many events from this address, slow down",
		}
	}

	if err := s.checkBusinessRateLimit(business); err != nil {
		return nil, err
	}

	validEvents, submissionErrors, totalBatchSize := s.processEvents(request.Events, businessID, clientIP, userID)

	if totalBatchSize > MaxBatchSizeBytes {
		return nil, &ValidationError{
			Code:    ErrorBatchTooLarge,
			Message: fmt.Sprintf("batch size %d bytes exceeds maximum %d bytes", totalBatchSize, MaxBatchSizeBytes),
		}
	}

	s.workerService.QueueLogs(validEvents)

	return &SubmitClientEventsResponseDTO{
		Accepted: len(validEvents),
		Rejected: len(submissionErrors),
		Errors:   submissionErrors,
	}, nil
}

func (s *ClientEventService) processEvents(
	eventRequests []ClientEventRequestDTO,
	businessID uuid.UUID,
	clientIP string,
	userID *uuid.UUID,
) ([]*SystemLog, []EventSubmissionError, int) {
	var validEvents []*SystemLog
	var submissionErrors []EventSubmissionError
	var totalBatchSize int

	for i, eventRequest := range eventRequests {
		eventSize, err := s.calculateEventSize(&eventRequest)
		if err != nil {
			submissionErrors = append(submissionErrors, EventSubmissionError{
				Index:   i,
				Message: fmt.Sprintf("failed to calculate event size: %v", err),
			})
			continue
		}

		totalBatchSize += eventSize

		if err := s.validateEvent(&eventRequest, eventSize); err != nil {
			message := err.Error()
			if validationErr, ok := err.(*ValidationError); ok {
				message = validationErr.Code
			}

			submissionErrors = append(submissionErrors, EventSubmissionError{
				Index:   i,
				Message: message,
			})
			continue
		}

		timestamp := time.Now().UTC()
		if eventRequest.Timestamp != nil && !eventRequest.Timestamp.After(timestamp) {
			timestamp = eventRequest.Timestamp.UTC()
		}

		systemLog := &SystemLog{
			ID:              uuid.New(),
			Timestamp:       timestamp,
			Level:           eventRequest.Level,
			Category:        eventRequest.Category,
			Message:         eventRequest.Message,
			Metadata:        s.marshalEventMetadata(&eventRequest),
			BusinessID:      &businessID,
			UserID:          userID,
			IPAddress:       clientIP,
			StackTrace:      eventRequest.StackTrace,
			ExecutionTimeMs: eventRequest.ExecutionTimeMs,
		}

		validEvents = append(validEvents, systemLog)
	}

	return validEvents, submissionErrors, totalBatchSize
}

func (s *ClientEventService) validateBatchLimits(
	request *SubmitClientEventsRequestDTO,
	business *businesses_models.Business,
) error {
	if len(request.Events) == 0 {
		return &ValidationError{
			Code:    ErrorBatchEmpty,
			Message: "batch cannot be empty",
		}
	}

	maxBatch := business.MaxEventsPerBatch
	if maxBatch <= 0 || maxBatch > MaxBatchSize {
		maxBatch = MaxBatchSize
	}

	if len(request.Events) > maxBatch {
		return &ValidationError{
			Code:    ErrorBatchTooLarge,
			Message: fmt.Sprintf("batch size cannot exceed %d events", maxBatch),
		}
	}

	return nil
}

func (s *ClientEventService) validateEvent(event *ClientEventRequestDTO, eventSize int) error {
	if !event.Level.IsValid() {
		return &ValidationError{
			Code:    ErrorInvalidLogLevel,
			Message: "invalid log level",
			Field:   "level",
		}
	}

	if !event.Category.IsValid() {
		return &ValidationError{
			Code:    ErrorInvalidCategory,
			Message: "invalid log category",
			Field:   "category",
		}
	}

	if !event.Category.IsClientSubmittable() {
		return &ValidationError{
			Code:    ErrorCategoryNotAllowed,
			Message: fmt.Sprintf("category %s cannot be submitted by clients", event.Category),
			Field:   "category",
		}
	}

	if strings.TrimSpace(event.Message) == "" {
		return &ValidationError{
			Code:    ErrorMessageEmpty,
			Message: "message cannot be empty",
			Field:   "message",
		}
	}

	if eventSize > MaxEventSizeBytes {
		return &ValidationError{
			Code:    ErrorEventTooLarge,
			Message: fmt.Sprintf("event size %d bytes exceeds maximum %d bytes", eventSize, MaxEventSizeBytes),
			Field:   "size",
		}
	}

	return nil
}

func (s *ClientEventService) checkBusinessRateLimit(business *businesses_models.Business) error {
	// EventsPerSecondLimit of 0 means unlimited
	if business.EventsPerSecondLimit == 0 {
		return nil
	}

	burstLimit := business.EventsPerSecondLimit * EventsBurstMultiplier

	result, err := s.rateLimiter.CheckRateLimit(business.ID, business.EventsPerSecondLimit, burstLimit)
	if err != nil {
		return fmt.Errorf("rate limit check failed: %w", err)
	}

	if !result.Allowed {
		return &ValidationError{
			Code:    ErrorRateLimitExceeded,
			Message: fmt.Sprintf("events per second limit exceeded, retry after %d seconds", result.RetryAfterSec),
		}
	}

	return nil
}

func (s *ClientEventService) allowIP(clientIP string) bool {
	if clientIP == "" {
		return true
	}

	s.ipLimitersMutex.Lock()
	defer s.ipLimitersMutex.Unlock()

	now := time.Now()

	entry, exists := s.ipLimiters[clientIP]
	if !exists {
		// Drop limiters for addresses that went quiet
		for ip, stale := range s.ipLimiters {
			if now.Sub(stale.lastSeen) > ipLimiterMaxIdle {
				delete(s.ipLimiters, ip)
			}
		}

		entry = &ipLimiterEntry{
			limiter: rate.NewLimiter(rate.Limit(perIPEventsPerSecond), perIPBurst),
		}
		s.ipLimiters[clientIP] = entry
	}

	entry.lastSeen = now

	return entry.limiter.Allow()
}

func (s *ClientEventService) calculateEventSize(event *ClientEventRequestDTO) (int, error) {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return 0, err
	}

	return len(jsonData), nil
}

func (s *ClientEventService) marshalEventMetadata(event *ClientEventRequestDTO) datatypes.JSON {
	if event.Metadata == nil {
		return nil
	}

	payload, err := json.Marshal(event.Metadata)
	if err != nil {
		s.logger.Error("failed to serialize client event metadata", slog.String("error", err.Error()))
		return nil
	}

	return datatypes.JSON(payload)
}
