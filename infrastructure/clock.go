package infrastructure

import (
	"time"

	"pointdesk/domain/interfaces"
)

// SystemClock returns a Clock backed by the system time
func SystemClock() interfaces.Clock {
	return interfaces.ClockFunc(time.Now)
}
