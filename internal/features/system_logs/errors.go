package system_logs

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

const (
	ErrorBusinessNotFound   = "BUSINESS_NOT_FOUND"
	ErrorRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrorBatchTooLarge      = "BATCH_TOO_LARGE"
	ErrorBatchEmpty         = "BATCH_EMPTY"
	ErrorEventTooLarge      = "EVENT_TOO_LARGE"
	ErrorInvalidLogLevel    = "INVALID_LOG_LEVEL"
	ErrorInvalidCategory    = "INVALID_CATEGORY"
	ErrorCategoryNotAllowed = "CATEGORY_NOT_ALLOWED"
	ErrorMessageEmpty       = "MESSAGE_EMPTY"
)
