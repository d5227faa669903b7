package system_logs

type LogLevel string

const (
	LogLevelDebug    LogLevel = "DEBUG"
	LogLevelInfo     LogLevel = "INFO"
	LogLevelWarn     LogLevel = "WARN"
	LogLevelError    LogLevel = "ERROR"
	LogLevelCritical LogLevel = "CRITICAL"
)

func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelCritical:
		return true
	default:
		return false
	}
}

type LogCategory string

const (
	CategoryAuth         LogCategory = "AUTH"
	CategoryDatabase     LogCategory = "DATABASE"
	CategoryAPI          LogCategory = "API"
	CategoryEdgeFunction LogCategory = "EDGE_FUNCTION"
	CategoryClientError  LogCategory = "CLIENT_ERROR"
	CategorySecurity     LogCategory = "SECURITY"
	CategoryPerformance  LogCategory = "PERFORMANCE"
	CategoryUserAction   LogCategory = "USER_ACTION"
	CategoryPageView     LogCategory = "PAGE_VIEW"
	CategoryNavigation   LogCategory = "NAVIGATION"
)

func (c LogCategory) IsValid() bool {
	switch c {
	case CategoryAuth, CategoryDatabase, CategoryAPI, CategoryEdgeFunction,
		CategoryClientError, CategorySecurity, CategoryPerformance,
		CategoryUserAction, CategoryPageView, CategoryNavigation:
		return true
	default:
		return false
	}
}

// IsClientSubmittable reports whether browsers may submit events of this
// category through the ingestion endpoint. Server-side categories are
// reserved for the in-process writer.
func (c LogCategory) IsClientSubmittable() bool {
	switch c {
	case CategoryClientError, CategoryPageView, CategoryNavigation, CategoryPerformance:
		return true
	default:
		return false
	}
}
