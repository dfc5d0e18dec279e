// ABOUTME: Human-readable duration formatting for summaries
// ABOUTME: Renders whole hours, minutes and seconds
package summary

import (
	"fmt"
	"time"
)

// FormatDuration renders d as "H hours, M minutes, S seconds".
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	hours := secs / 3600
	secs -= hours * 3600
	minutes := secs / 60
	secs -= minutes * 60
	return fmt.Sprintf("%d hours, %d minutes, %d seconds", hours, minutes, secs)
}

// FormatShort renders d compactly as "3h 20m", or "20m" under an hour.
func FormatShort(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int64(d.Hours())
	minutes := int64(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
