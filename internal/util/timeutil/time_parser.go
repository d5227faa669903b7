package timeutil

import "time"

// ParseTimestamp converts the timestamp formats browsers and SDKs send
// (ISO strings, plain dates, unix seconds or milliseconds) to time.Time
// in UTC. Unparseable or missing values fall back to the current time,
// which suits ingestion paths that always need a timestamp.
func ParseTimestamp(timestamp any) time.Time {
	if parsed, isOk := TryParseTimestamp(timestamp); isOk {
		return parsed
	}

	return time.Now().UTC()
}

// TryParseTimestamp is the strict variant: it reports failure instead of
// substituting the current time, for callers where a bad value must not
// silently become "now" (date-range filters).
func TryParseTimestamp(timestamp any) (time.Time, bool) {
	if timestamp == nil {
		return time.Time{}, false
	}

	switch v := timestamp.(type) {
	case string:
		if v == "" {
			return time.Time{}, false
		}

		formats := []string{
			time.RFC3339,
			time.RFC3339Nano,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
		}

		for _, format := range formats {
			if t, err := time.Parse(format, v); err == nil {
				return t.UTC(), true
			}
		}

		return time.Time{}, false

	case float64:
		// JSON numbers arrive as float64; >1e12 means milliseconds
		if v > 1e12 {
			return time.Unix(0, int64(v)*int64(time.Millisecond)).UTC(), true
		}
		return time.Unix(int64(v), 0).UTC(), true

	case int64:
		if v > 1e12 {
			return time.Unix(0, v*int64(time.Millisecond)).UTC(), true
		}
		return time.Unix(v, 0).UTC(), true

	case int:
		return TryParseTimestamp(int64(v))

	default:
		return time.Time{}, false
	}
}

// EndOfDay returns 23:59:59.999999999 of the given day in its location.
// Date-range filters treat the end date as inclusive through the whole day.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// StartOfDay returns midnight of the given day in its location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
