package utils

import (
	"math"
	"time"
)

// ParseDuration safely parses a duration string like "24h", falling back to
// the given default on empty or malformed input
func ParseDuration(d string, fallback time.Duration) time.Duration {
	if d == "" {
		return fallback
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return fallback
	}
	return duration
}

// Numeric converts supported value types to float64. The second return is
// false when the value is missing or non-numeric, so callers can exclude it
// from aggregates instead of counting a zero.
func Numeric(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}

// IsEmpty reports whether a record field counts as missing: absent, nil, or
// an empty string
func IsEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// ParseTime parses a record timestamp that may arrive as time.Time or an
// RFC3339 string (the form JSON round-trips produce)
func ParseTime(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		if t, err := time.Parse(time.RFC3339, val); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02T15:04:05.999999Z07:00", val); err == nil {
			return t, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Round2 rounds to two decimal places, matching how scores are reported
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
