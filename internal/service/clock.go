package service

import "time"

// Clock abstracts the source of "server now" so that conflict resolution and
// rate limiting stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// RealClock is the production [Clock] backed by the system time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
