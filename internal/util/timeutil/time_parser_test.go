package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_ParseTimestamp_WithNilInput_ReturnsCurrentTime(t *testing.T) {
	before := time.Now().UTC()
	result := ParseTimestamp(nil)
	after := time.Now().UTC()

	assert.True(t, result.After(before.Add(-time.Second)) && result.Before(after.Add(time.Second)))
	assert.Equal(t, time.UTC, result.Location())
}

func Test_ParseTimestamp_WithISOStrings_ParsesCorrectly(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "RFC3339 format",
			input:    "2023-12-25T15:30:45Z",
			expected: time.Date(2023, 12, 25, 15, 30, 45, 0, time.UTC),
		},
		{
			name:     "RFC3339 with timezone",
			input:    "2023-12-25T15:30:45+02:00",
			expected: time.Date(2023, 12, 25, 13, 30, 45, 0, time.UTC),
		},
		{
			name:     "ISO without timezone",
			input:    "2023-12-25T15:30:45",
			expected: time.Date(2023, 12, 25, 15, 30, 45, 0, time.UTC),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ParseTimestamp(test.input))
		})
	}
}

func Test_ParseTimestamp_WithUnixNumbers_DistinguishesSecondsAndMilliseconds(t *testing.T) {
	seconds := time.Date(2023, 12, 25, 15, 30, 45, 0, time.UTC)

	assert.Equal(t, seconds, ParseTimestamp(seconds.Unix()))
	assert.Equal(t, seconds, ParseTimestamp(seconds.UnixMilli()))
	assert.Equal(t, seconds, ParseTimestamp(float64(seconds.Unix())))
}

func Test_EndOfDay_CoversWholeCalendarDay(t *testing.T) {
	day := time.Date(2024, 1, 2, 10, 11, 12, 0, time.UTC)
	end := EndOfDay(day)

	assert.Equal(t, time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC), end.Truncate(time.Second))

	lastSecond := time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	assert.False(t, lastSecond.After(end))
	assert.True(t, nextDay.After(end))
}

func Test_StartOfDay_ReturnsMidnight(t *testing.T) {
	day := time.Date(2024, 1, 2, 10, 11, 12, 13, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), StartOfDay(day))
}

func Test_ParseTimestamp_WithPlainDate_ParsesAsMidnight(t *testing.T) {
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ParseTimestamp("2024-01-02"))
}

func Test_TryParseTimestamp_WithUnparseableInput_ReportsFailure(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{name: "garbage string", input: "not-a-date"},
		{name: "empty string", input: ""},
		{name: "nil", input: nil},
		{name: "unsupported type", input: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			parsed, isOk := TryParseTimestamp(test.input)

			assert.False(t, isOk)
			assert.True(t, parsed.IsZero())
		})
	}
}

func Test_TryParseTimestamp_WithValidInputs_ParsesWithoutFallback(t *testing.T) {
	parsed, isOk := TryParseTimestamp("2024-01-02")
	assert.True(t, isOk)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), parsed)

	seconds := time.Date(2023, 12, 25, 15, 30, 45, 0, time.UTC)
	parsed, isOk = TryParseTimestamp(seconds.Unix())
	assert.True(t, isOk)
	assert.Equal(t, seconds, parsed)
}
