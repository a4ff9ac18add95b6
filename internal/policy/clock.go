package policy

import "time"

// Clock supplies the current time for time-gated visibility decisions.
// Injecting it keeps the policy functions deterministic under test; the
// functions themselves take an explicit instant so they stay pure.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation used in production.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
