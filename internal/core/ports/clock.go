package ports

import "time"

// Clock abstracts wall-clock time so report windows and escalation
// sweeps can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}
