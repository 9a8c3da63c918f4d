package utils

import "time"

// DisplayLayout renders timestamps as dd-MM-yyyy HH:mm:ss
const DisplayLayout = "02-01-2006 15:04:05"

// FormatTimestamp renders t for display in UTC. The zero time renders empty.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DisplayLayout)
}
