package driven

import "time"

// Clock provides the current time. Wall-clock time is injected rather
// than read directly so that sync-state transitions can be tested with
// controlled timestamps.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
