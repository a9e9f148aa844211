package repository

import "time"

// timeLayout is the storage format for every timestamp column.
const timeLayout = time.RFC3339Nano

// parseTime parses a stored timestamp, returning the zero time on failure.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}
