package domain

import "time"

// Clock abstracts the current instant so scheduling logic can be tested
// against a fixed point in time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// WallClockNow returns the current time-of-day as observed in loc.
func WallClockNow(clock Clock, loc *time.Location) TimeOfDay {
	now := clock.Now().In(loc)

	return TimeOfDay{hour: now.Hour(), minute: now.Minute()}
}

// InstantFor returns the absolute instant of the given civil time-of-day in
// loc, dayOffset days after the current date in loc. time.Date resolves the
// UTC offset for the target date, so the result stays correct across
// daylight-saving transitions.
func InstantFor(clock Clock, t TimeOfDay, loc *time.Location, dayOffset int) time.Time {
	now := clock.Now().In(loc)

	return time.Date(now.Year(), now.Month(), now.Day()+dayOffset, t.Hour(), t.Minute(), 0, 0, loc)
}
