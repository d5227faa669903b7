package logstream

import (
	"strings"
	"time"

	"receipthub/internal/util/timeutil"
)

// FilterCriteria narrows the displayed view of a record sequence. An empty
// value on any dimension means "no constraint on that dimension", never
// "match nothing". All dimensions are ANDed.
type FilterCriteria struct {
	SearchText    string     `json:"searchText"`
	Statuses      []string   `json:"statuses"`
	Levels        []string   `json:"levels"`
	Categories    []string   `json:"categories"`
	ResourceTypes []string   `json:"resourceTypes"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	IPAddress     string     `json:"ipAddress"`
	UserEmail     string     `json:"userEmail"`
}

func (c *FilterCriteria) IsEmpty() bool {
	return c.SearchText == "" &&
		len(c.Statuses) == 0 &&
		len(c.Levels) == 0 &&
		len(c.Categories) == 0 &&
		len(c.ResourceTypes) == 0 &&
		c.StartDate == nil &&
		c.EndDate == nil &&
		c.IPAddress == "" &&
		c.UserEmail == ""
}

// Matches is a pure predicate over one record. Filtering never mutates the
// underlying sequence; it only selects what is displayed.
func (c *FilterCriteria) Matches(record *LogRecord) bool {
	if !c.matchesSeverity(record) {
		return false
	}
	if !c.matchesCategory(record) {
		return false
	}
	if !c.matchesDateRange(record) {
		return false
	}
	if !c.matchesIP(record) {
		return false
	}
	if !c.matchesUserEmail(record) {
		return false
	}

	return c.matchesSearchText(record)
}

// matchesSeverity checks status membership for audit records and level
// membership for system records.
func (c *FilterCriteria) matchesSeverity(record *LogRecord) bool {
	if record.Kind == RecordKindAudit {
		return len(c.Statuses) == 0 || containsFold(c.Statuses, record.Audit.Status)
	}

	return len(c.Levels) == 0 || containsFold(c.Levels, record.System.Level)
}

// matchesCategory checks resource-type membership for audit records and
// category membership for system records.
func (c *FilterCriteria) matchesCategory(record *LogRecord) bool {
	if record.Kind == RecordKindAudit {
		return len(c.ResourceTypes) == 0 || containsFold(c.ResourceTypes, record.Audit.ResourceType)
	}

	return len(c.Categories) == 0 || containsFold(c.Categories, record.System.Category)
}

// matchesDateRange keeps the end date inclusive through 23:59:59 of that
// calendar day rather than cutting off at midnight.
func (c *FilterCriteria) matchesDateRange(record *LogRecord) bool {
	timestamp := record.Timestamp()

	if c.StartDate != nil && timestamp.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && timestamp.After(timeutil.EndOfDay(*c.EndDate)) {
		return false
	}

	return true
}

func (c *FilterCriteria) matchesIP(record *LogRecord) bool {
	if c.IPAddress == "" {
		return true
	}

	return strings.Contains(record.IPAddress(), c.IPAddress)
}

func (c *FilterCriteria) matchesUserEmail(record *LogRecord) bool {
	if c.UserEmail == "" {
		return true
	}
	if record.Profile == nil {
		return false
	}

	return strings.Contains(strings.ToLower(record.Profile.Email), strings.ToLower(c.UserEmail))
}

// matchesSearchText matches when any searchable field of the record contains
// the text, including the JSON-serialized form of opaque map fields.
func (c *FilterCriteria) matchesSearchText(record *LogRecord) bool {
	if c.SearchText == "" {
		return true
	}

	needle := strings.ToLower(c.SearchText)

	for _, field := range record.searchableFields() {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}

	return false
}

func (r *LogRecord) searchableFields() []string {
	fields := make([]string, 0, 10)

	switch r.Kind {
	case RecordKindAudit:
		fields = append(fields,
			r.Audit.Action,
			r.Audit.ResourceType,
			r.Audit.ResourceID,
			r.Audit.ErrorMessage,
			r.Audit.IPAddress,
			string(r.Audit.BeforeSnapshot),
			string(r.Audit.AfterSnapshot),
		)
	case RecordKindSystem:
		fields = append(fields,
			r.System.Message,
			r.System.Category,
			r.System.StackTrace,
			r.System.IPAddress,
			string(r.System.Metadata),
		)
	}

	if r.Profile != nil {
		fields = append(fields, r.Profile.DisplayName, r.Profile.Email)
	}

	return fields
}

func containsFold(values []string, value string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, value) {
			return true
		}
	}

	return false
}
