package domain

import (
	"math"
	"sort"
)

// IntervalDistributor spreads a target number of notifications evenly across
// the combined duration of a set of time windows.
type IntervalDistributor struct{}

func NewIntervalDistributor() *IntervalDistributor {
	return &IntervalDistributor{}
}

// Distribute returns count times-of-day, one at the center of each equal
// slice of the combined window duration, sorted ascending by minute-of-day.
//
// Windows are consumed in input order when matching slice centers, and
// overlapping windows each contribute their full duration. Both properties
// are load-bearing for reproducibility: identical input always yields
// identical output.
func (d *IntervalDistributor) Distribute(count int, windows []TimeWindow) []TimeOfDay {
	if count < 1 || len(windows) == 0 {
		return nil
	}

	total := 0
	for _, w := range windows {
		total += w.DurationMinutes()
	}

	spacing := float64(total) / float64(count)

	times := make([]TimeOfDay, 0, count)

	for i := 0; i < count; i++ {
		target := spacing*float64(i) + spacing/2

		accumulated := 0.0
		for _, w := range windows {
			duration := float64(w.DurationMinutes())
			if target < accumulated+duration {
				within := target - accumulated
				absolute := math.Mod(float64(w.Start().MinuteOfDay())+within, minutesPerDay)

				times = append(times, TimeOfDay{
					hour:   int(absolute) / 60,
					minute: int(absolute) % 60,
				})

				break
			}

			accumulated += duration
		}
	}

	sort.Slice(times, func(i, j int) bool {
		return times[i].MinuteOfDay() < times[j].MinuteOfDay()
	})

	return times
}
