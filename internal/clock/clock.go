package clock

import "time"

// Clock supplies the current time so that business logic never reads the wall
// clock directly. Maturity checks depend on it being injectable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the wall clock in UTC.
func System() Clock { return systemClock{} }

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time { return f.t }

// Fixed returns a Clock frozen at t. Useful for deterministic maturity tests.
func Fixed(t time.Time) Clock { return fixedClock{t: t.UTC()} }
