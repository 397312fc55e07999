package progress

import (
	"fmt"
	"time"
)

// EstimateRemaining extrapolates linearly from the bytes moved so far.
// It reports false when nothing has been transferred yet.
func EstimateRemaining(total, transferred int64, elapsed time.Duration) (time.Duration, bool) {
	if transferred <= 0 {
		return 0, false
	}

	projected := time.Duration(float64(elapsed) * (float64(total) / float64(transferred)))
	remaining := projected - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// FormatDuration renders d as days/hours/minutes/seconds, omitting leading
// fields that are zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Round(time.Second) / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd:%02dh:%02dm:%02ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%02dh:%02dm:%02ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%02dm:%02ds", minutes, seconds)
	default:
		return fmt.Sprintf("%02ds", seconds)
	}
}
