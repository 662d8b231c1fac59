package views

import "fmt"

// FormatRuntime renders a runtime in minutes as "2 h 16 min". Runtimes
// under an hour drop the hour part; unknown runtimes render empty.
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%d h", h)
	default:
		return fmt.Sprintf("%d h %d min", h, m)
	}
}
