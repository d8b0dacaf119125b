package derive

import "time"

// Layouts accepted for backend date strings. Date-only values compare
// as midnight local time; there is no timezone normalization.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	time.RFC3339,
}

// ParseDate parses a backend date or date-time string in local time.
// The second return is false for empty or unparseable values.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// overdueAt reports whether the task's follow-up date is strictly in the
// past relative to now. Tasks without a parseable follow-up date are
// never overdue.
func overdueAt(followUp string, now time.Time) bool {
	t, ok := ParseDate(followUp)
	if !ok {
		return false
	}
	return t.Before(now)
}

// startOfDay truncates now to local midnight.
func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
