package domain

const minutesPerDay = 24 * 60

// TimeWindow is an allowed span of times-of-day during which reminders may
// be placed. A window whose end is at or before its start wraps past
// midnight, so {23:00, 23:00} covers a full day.
type TimeWindow struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewTimeWindow(start, end TimeOfDay) TimeWindow {
	return TimeWindow{start: start, end: end}
}

func (w TimeWindow) Start() TimeOfDay {
	return w.start
}

func (w TimeWindow) End() TimeOfDay {
	return w.end
}

// DurationMinutes returns the window length, counting wrap-around windows
// as reaching into the following day.
func (w TimeWindow) DurationMinutes() int {
	start := w.start.MinuteOfDay()
	end := w.end.MinuteOfDay()

	if end <= start {
		end += minutesPerDay
	}

	return end - start
}
