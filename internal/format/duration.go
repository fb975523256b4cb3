package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a wall-clock duration for display.
// Sub-millisecond durations are shown in whole microseconds, sub-second
// durations in whole milliseconds; anything longer uses the default Go
// representation.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}
