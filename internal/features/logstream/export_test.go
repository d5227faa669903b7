package logstream

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func Test_ExportCSV_SystemVariant_ColumnsAndMetadataJSON(t *testing.T) {
	executionTime := int64(42)
	record := NewSystemRecord(&SystemRecordData{
		ID:              uuid.New(),
		Timestamp:       time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
		Level:           "WARN",
		Category:        "PERFORMANCE",
		Message:         "slow query",
		Metadata:        datatypes.JSON(`{"table": "receipts"}`),
		IPAddress:       "198.51.100.9",
		ExecutionTimeMs: &executionTime,
	})

	payload, err := ExportCSV(RecordKindSystem, []*LogRecord{record})
	require.NoError(t, err)

	lines := splitCSVLines(string(payload))
	require.Len(t, lines, 2)
	assert.Equal(t, "Timestamp,Level,Category,Message,User,IPAddress,ExecutionTime,Metadata", lines[0])
	assert.Contains(t, lines[1], "2026-02-03T04:05:06Z")
	assert.Contains(t, lines[1], "WARN")
	assert.Contains(t, lines[1], "42")
	// Metadata JSON is quoted and its embedded quotes doubled
	assert.Contains(t, lines[1], `"{""table"": ""receipts""}"`)
}

func Test_ExportCSV_QuotesFieldsWithCommasAndQuotes(t *testing.T) {
	record := NewSystemRecord(&SystemRecordData{
		ID:        uuid.New(),
		Timestamp: time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
		Level:     "ERROR",
		Category:  "CLIENT_ERROR",
		Message:   `boom, said "the browser"`,
	})

	payload, err := ExportCSV(RecordKindSystem, []*LogRecord{record})
	require.NoError(t, err)

	assert.Contains(t, string(payload), `"boom, said ""the browser"""`)
}

func Test_ExportCSV_AuditVariant_UserFallbacks(t *testing.T) {
	actorless := makeAuditRecord("retention.cleanup", "success", time.Now().UTC())

	actorID := uuid.New()
	unresolved := NewAuditRecord(&AuditRecordData{
		ID:          uuid.New(),
		ActorUserID: &actorID,
		Action:      "receipt.create",
		Status:      "success",
		CreatedAt:   time.Now().UTC(),
	})

	resolved := makeAuditRecord("receipt.update", "success", time.Now().UTC())
	resolved.Profile = &Profile{DisplayName: "Ira Chen", Email: "ira@example.com"}

	payload, err := ExportCSV(RecordKindAudit, []*LogRecord{actorless, unresolved, resolved})
	require.NoError(t, err)

	lines := splitCSVLines(string(payload))
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "System")
	assert.Contains(t, lines[2], "Unknown")
	assert.Contains(t, lines[3], "Ira Chen")
}

func Test_ExportCSV_SkipsRecordsOfOtherKind(t *testing.T) {
	audit := makeAuditRecord("receipt.create", "success", time.Now().UTC())
	system := makeSystemRecord("noise", "INFO", time.Now().UTC())

	payload, err := ExportCSV(RecordKindAudit, []*LogRecord{audit, system})
	require.NoError(t, err)

	lines := splitCSVLines(string(payload))
	require.Len(t, lines, 2)
	assert.False(t, strings.Contains(string(payload), "noise"))
}
