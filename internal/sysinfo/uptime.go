package sysinfo

import "fmt"

// FormatUptime renders elapsed milliseconds using the most significant units:
// "Xd Yh Zm", "Xh Ym Zs", "Xm Ys" or "Zs".
func FormatUptime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	seconds := ms / 1000
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
