package logstream

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func Test_Criteria_IPSubstringContainment(t *testing.T) {
	record := NewSystemRecord(&SystemRecordData{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Level:     "INFO",
		Category:  "API",
		Message:   "request served",
		IPAddress: "10.20.30.40",
	})

	matching := &FilterCriteria{IPAddress: "20.30"}
	assert.True(t, matching.Matches(record))

	nonMatching := &FilterCriteria{IPAddress: "192.168"}
	assert.False(t, nonMatching.Matches(record))
}

func Test_Criteria_UserEmailSubstring_CaseInsensitive(t *testing.T) {
	record := makeAuditRecord("receipt.create", "success", time.Now().UTC())
	record.Profile = &Profile{DisplayName: "Dana Keller", Email: "Dana.Keller@Example.COM"}

	matching := &FilterCriteria{UserEmail: "dana.keller"}
	assert.True(t, matching.Matches(record))

	nonMatching := &FilterCriteria{UserEmail: "someone-else"}
	assert.False(t, nonMatching.Matches(record))

	// A record with no resolved profile cannot match an email constraint
	unresolved := makeAuditRecord("receipt.create", "success", time.Now().UTC())
	assert.False(t, matching.Matches(unresolved))
}

func Test_Criteria_StatusMembership_CaseInsensitive(t *testing.T) {
	record := makeAuditRecord("receipt.create", "DENIED", time.Now().UTC())

	criteria := &FilterCriteria{Statuses: []string{"denied"}}
	assert.True(t, criteria.Matches(record))
}

func Test_Criteria_SearchSpansProfileAndSnapshots(t *testing.T) {
	actorID := uuid.New()
	record := NewAuditRecord(&AuditRecordData{
		ID:            uuid.New(),
		ActorUserID:   &actorID,
		Action:        "business.update",
		Status:        "success",
		AfterSnapshot: datatypes.JSON(`{"name": "Acme Legal"}`),
		CreatedAt:     time.Now().UTC(),
	})
	record.Profile = &Profile{DisplayName: "Morgan Reyes", Email: "morgan@example.com"}

	assert.True(t, (&FilterCriteria{SearchText: "acme legal"}).Matches(record))
	assert.True(t, (&FilterCriteria{SearchText: "morgan"}).Matches(record))
	assert.True(t, (&FilterCriteria{SearchText: "business.update"}).Matches(record))
	assert.False(t, (&FilterCriteria{SearchText: "unrelated"}).Matches(record))
}

func Test_Criteria_AllDimensionsANDed(t *testing.T) {
	record := makeAuditRecord("receipt.create", "success", time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	matching := &FilterCriteria{
		SearchText: "receipt",
		Statuses:   []string{"success"},
		StartDate:  &start,
	}
	assert.True(t, matching.Matches(record))

	// One failing dimension fails the whole predicate
	oneOff := &FilterCriteria{
		SearchText: "receipt",
		Statuses:   []string{"denied"},
		StartDate:  &start,
	}
	assert.False(t, oneOff.Matches(record))
}

func Test_Criteria_IsEmpty(t *testing.T) {
	assert.True(t, (&FilterCriteria{}).IsEmpty())
	assert.False(t, (&FilterCriteria{SearchText: "x"}).IsEmpty())

	now := time.Now()
	assert.False(t, (&FilterCriteria{EndDate: &now}).IsEmpty())
}
