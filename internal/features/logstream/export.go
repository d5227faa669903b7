package logstream

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

var auditExportHeader = []string{
	"Timestamp", "Status", "Action", "Resource", "User", "IPAddress", "Snapshots",
}

var systemExportHeader = []string{
	"Timestamp", "Level", "Category", "Message", "User", "IPAddress", "ExecutionTime", "Metadata",
}

// ExportCSV serializes records to CSV, one row per record in the given
// order. The column set differs by variant; opaque map fields are written
// as their JSON string form. A pure transform, no network calls.
func ExportCSV(kind RecordKind, records []*LogRecord) ([]byte, error) {
	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)

	header := systemExportHeader
	if kind == RecordKindAudit {
		header = auditExportHeader
	}

	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for _, record := range records {
		if record.Kind != kind {
			continue
		}

		var row []string
		if kind == RecordKindAudit {
			row = auditExportRow(record)
		} else {
			row = systemExportRow(record)
		}

		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write export row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush export: %w", err)
	}

	return buffer.Bytes(), nil
}

func auditExportRow(record *LogRecord) []string {
	data := record.Audit

	resource := data.ResourceType
	if data.ResourceID != "" {
		resource = data.ResourceType + "/" + data.ResourceID
	}

	snapshots := ""
	if len(data.BeforeSnapshot) > 0 || len(data.AfterSnapshot) > 0 {
		snapshots = fmt.Sprintf(`{"before":%s,"after":%s}`,
			jsonOrNull(data.BeforeSnapshot),
			jsonOrNull(data.AfterSnapshot))
	}

	return []string{
		data.CreatedAt.UTC().Format(time.RFC3339),
		data.Status,
		data.Action,
		resource,
		record.DisplayUser(),
		data.IPAddress,
		snapshots,
	}
}

func systemExportRow(record *LogRecord) []string {
	data := record.System

	executionTime := ""
	if data.ExecutionTimeMs != nil {
		executionTime = strconv.FormatInt(*data.ExecutionTimeMs, 10)
	}

	return []string{
		data.Timestamp.UTC().Format(time.RFC3339),
		data.Level,
		data.Category,
		data.Message,
		record.DisplayUser(),
		data.IPAddress,
		executionTime,
		string(data.Metadata),
	}
}

func jsonOrNull(payload []byte) string {
	if len(payload) == 0 {
		return "null"
	}

	return string(payload)
}

// ExportCurrentView serializes the filtered (not merely paginated) view.
func (c *StreamController) ExportCurrentView() ([]byte, error) {
	return ExportCSV(c.kind, c.FilteredRecords())
}
