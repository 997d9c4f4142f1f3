package ledger

import (
	"fmt"
	"time"
)

// FormatClock renders a countdown as mm:ss, or hh:mm:ss once an hour or more
// remains. Negative values render as zero.
func FormatClock(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	if seconds >= 3600 {
		return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatDuration renders a completed duration for the on-screen history
// list, e.g. "1h 2m 3s". The CSV export deliberately does not use this; it
// has its own fixed-width format.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := seconds / 60 % 60
	seconds = seconds % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatDate renders a timestamp for the on-screen history list.
func FormatDate(stamp time.Time) string {
	return stamp.Format("2006-01-02 15:04")
}
