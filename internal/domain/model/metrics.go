package model

import (
	"fmt"
	"strings"
	"time"
)

// FallbackVersion is displayed when the collection has no modification
// timestamp to derive a version from.
const FallbackVersion = "v1.0.0"

// MetricsResult holds the knowledge base metrics derived from remote data.
// It is recomputed on every load and never persisted.
type MetricsResult struct {
	VersionString string
	RecordCount   int
}

// CountPolicy adjusts the raw record total before display. Offset 1 discounts
// the sentinel "not applicable" row some deployments keep in the collection.
type CountPolicy struct {
	Offset int
}

// Apply subtracts the offset from total, clamping the result at zero.
func (p CountPolicy) Apply(total int) int {
	n := total - p.Offset
	if n < 0 {
		return 0
	}
	return n
}

// timestampLayouts are the encodings PostgREST uses for timestamptz and
// timestamp columns, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// ParseTimestamp parses a modification timestamp as returned by the backend.
// Values without a zone are taken as UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// FormatVersion renders t as v<year>.<MM>.<DD> in UTC.
func FormatVersion(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("v%d.%02d.%02d", t.Year(), int(t.Month()), t.Day())
}

// VersionFromTimestamp derives the display version from a raw timestamp.
// It returns false when raw is empty or cannot be parsed.
func VersionFromTimestamp(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	t, err := ParseTimestamp(raw)
	if err != nil {
		return "", false
	}
	return FormatVersion(t), true
}
