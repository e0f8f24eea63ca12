package domain

import "time"

// NextFireCalculator derives the next fire cursor and instant for a sorted
// list of scheduled times-of-day.
type NextFireCalculator struct {
	clock Clock
}

func NewNextFireCalculator(clock Clock) *NextFireCalculator {
	return &NextFireCalculator{clock: clock}
}

// Reinitialize finds the first time-of-day strictly after the current wall
// clock in loc. When every entry has already passed today, it wraps to the
// first entry tomorrow. An empty list yields (0, nil).
func (c *NextFireCalculator) Reinitialize(times []TimeOfDay, loc *time.Location) (int, *time.Time) {
	if len(times) == 0 {
		return 0, nil
	}

	now := WallClockNow(c.clock, loc)

	for i, t := range times {
		if t.After(now) {
			at := InstantFor(c.clock, t, loc, 0)

			return i, &at
		}
	}

	at := InstantFor(c.clock, times[0], loc, 1)

	return 0, &at
}

// AdvanceAfterFire moves the cursor past firedIndex. Firing the last entry
// wraps to the first entry tomorrow; any other entry stays on today. The
// returned instant is strictly later than the fired slot, which prevents an
// immediate re-fire on the next sweep.
func (c *NextFireCalculator) AdvanceAfterFire(times []TimeOfDay, loc *time.Location, firedIndex int) (int, *time.Time) {
	if len(times) == 0 {
		return 0, nil
	}

	nextIndex := (firedIndex + 1) % len(times)

	dayOffset := 0
	if firedIndex >= len(times)-1 {
		dayOffset = 1
	}

	at := InstantFor(c.clock, times[nextIndex], loc, dayOffset)

	return nextIndex, &at
}
