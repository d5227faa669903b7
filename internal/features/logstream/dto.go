package logstream

import (
	"receipthub/internal/util/timeutil"
)

type OpenSessionRequestDTO struct {
	Kind RecordKind `json:"kind" binding:"required"`
}

type SessionResponseDTO struct {
	SessionID string    `json:"sessionId"`
	State     ViewState `json:"state"`
}

// SetFiltersRequestDTO mirrors FilterCriteria with permissive timestamp
// parsing: dates accept RFC3339 strings, plain dates and unix epochs.
type SetFiltersRequestDTO struct {
	SearchText    string   `json:"searchText"`
	Statuses      []string `json:"statuses"`
	Levels        []string `json:"levels"`
	Categories    []string `json:"categories"`
	ResourceTypes []string `json:"resourceTypes"`
	StartDate     any      `json:"startDate"`
	EndDate       any      `json:"endDate"`
	IPAddress     string   `json:"ipAddress"`
	UserEmail     string   `json:"userEmail"`
}

func (r *SetFiltersRequestDTO) ToCriteria() FilterCriteria {
	criteria := FilterCriteria{
		SearchText:    r.SearchText,
		Statuses:      r.Statuses,
		Levels:        r.Levels,
		Categories:    r.Categories,
		ResourceTypes: r.ResourceTypes,
		IPAddress:     r.IPAddress,
		UserEmail:     r.UserEmail,
	}

	// An unparseable date is dropped, leaving that dimension unconstrained.
	// Falling back to "now" here would silently narrow the view.
	if parsed, isOk := timeutil.TryParseTimestamp(r.StartDate); isOk {
		criteria.StartDate = &parsed
	}
	if parsed, isOk := timeutil.TryParseTimestamp(r.EndDate); isOk {
		criteria.EndDate = &parsed
	}

	return criteria
}

type GetPageResponseDTO struct {
	Records    []*LogRecord `json:"records"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	PageSize   int          `json:"pageSize"`
}

type ScrollPositionRequestDTO struct {
	AtTop bool `json:"atTop"`
}

type TogglePauseResponseDTO struct {
	IsPaused bool      `json:"isPaused"`
	State    ViewState `json:"state"`
}
