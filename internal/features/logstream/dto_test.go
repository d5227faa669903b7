package logstream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SetFiltersRequest_WithPlainDates_ParsesCalendarBounds(t *testing.T) {
	request := &SetFiltersRequestDTO{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
	}

	criteria := request.ToCriteria()

	require.NotNil(t, criteria.StartDate)
	require.NotNil(t, criteria.EndDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *criteria.StartDate)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), *criteria.EndDate)

	// A record late on the end day still passes: end dates are inclusive
	// through the whole calendar day.
	record := makeAuditRecord("create_receipt", "success",
		time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC))
	assert.True(t, criteria.Matches(record))
}

func Test_SetFiltersRequest_WithUnparseableDates_LeavesRangeUnconstrained(t *testing.T) {
	request := &SetFiltersRequestDTO{
		StartDate: "not-a-date",
		EndDate:   "also-garbage",
	}

	criteria := request.ToCriteria()

	assert.Nil(t, criteria.StartDate)
	assert.Nil(t, criteria.EndDate)

	// Unconstrained means every record matches, including old ones that a
	// fallback-to-now end bound would have let through and a fallback-to-now
	// start bound would have hidden.
	old := makeAuditRecord("create_receipt", "success",
		time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC))
	assert.True(t, criteria.Matches(old))
}

func Test_SetFiltersRequest_WithoutDates_LeavesRangeUnconstrained(t *testing.T) {
	criteria := (&SetFiltersRequestDTO{SearchText: "invoice"}).ToCriteria()

	assert.Nil(t, criteria.StartDate)
	assert.Nil(t, criteria.EndDate)
	assert.Equal(t, "invoice", criteria.SearchText)
}
