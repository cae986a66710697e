package timebase

import (
	"time"
)

// LocalClock paces periodic work such as the control loop.
type LocalClock interface {
	Now() time.Time
	Sleep(duration time.Duration)
}
