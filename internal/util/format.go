package util

import (
	"fmt"
	"math"
	"time"
)

// FormatTime formats a position in seconds as m:ss.
// Zero, negative, NaN and infinite values all render as "0:00".
func FormatTime(sec float64) string {
	if sec <= 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return "0:00"
	}
	total := int(math.Floor(sec))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	return FormatTime(d.Seconds())
}
