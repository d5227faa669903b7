package system_logs

import (
	"time"

	"github.com/google/uuid"
)

type ClientEventRequestDTO struct {
	Level           LogLevel       `json:"level"`
	Category        LogCategory    `json:"category"`
	Message         string         `json:"message"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	StackTrace      string         `json:"stackTrace,omitempty"`
	ExecutionTimeMs *int64         `json:"executionTimeMs,omitempty"`
	Timestamp       *time.Time     `json:"timestamp,omitempty"`
}

type SubmitClientEventsRequestDTO struct {
	Events []ClientEventRequestDTO `json:"events"`
}

type EventSubmissionError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

type SubmitClientEventsResponseDTO struct {
	Accepted int                    `json:"accepted"`
	Rejected int                    `json:"rejected"`
	Errors   []EventSubmissionError `json:"errors,omitempty"`
}

type GetSystemLogsRequest struct {
	Limit      int          `form:"limit"      json:"limit"`
	Offset     int          `form:"offset"     json:"offset"`
	Level      *LogLevel    `form:"level"      json:"level"`
	Category   *LogCategory `form:"category"   json:"category"`
	BeforeDate *time.Time   `form:"beforeDate" json:"beforeDate"`
}

type GetSystemLogsResponse struct {
	SystemLogs []*SystemLog `json:"systemLogs"`
	Limit      int          `json:"limit"`
	Offset     int          `json:"offset"`
}

type SystemLogWriteOptions struct {
	BusinessID      *uuid.UUID
	UserID          *uuid.UUID
	IPAddress       string
	StackTrace      string
	ExecutionTimeMs *int64
}
