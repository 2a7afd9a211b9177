package common

import (
	"fmt"
)

// FormatBytes renders a byte count using the largest unit whose value is at
// least 1, with one decimal place.
func FormatBytes(bytes int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	unitIndex := 0
	size := float64(bytes)

	for size >= 1024 && unitIndex < len(units)-1 {
		size /= 1024
		unitIndex++
	}
	return fmt.Sprintf("%.1f %s", size, units[unitIndex])
}

// FormatMbps renders a megabit-per-second rate with one decimal place.
func FormatMbps(mbps float64) string {
	return fmt.Sprintf("%.1f Mbps", mbps)
}

// FormatPercent rounds a ratio-derived percentage to the given number of
// decimal places for display. The stored value keeps full precision.
func FormatPercent(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value)
}
