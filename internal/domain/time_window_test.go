package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/remember-me/notification-engine/internal/domain"
)

func TestTimeWindowDurationMinutesSuccess(t *testing.T) {
	tests := []struct {
		name     string
		start    domain.TimeOfDay
		end      domain.TimeOfDay
		expected int
	}{
		{
			name:     "daytime window",
			start:    domain.MustTimeOfDay(9, 0),
			end:      domain.MustTimeOfDay(18, 0),
			expected: 540,
		},
		{
			name:     "wrap-around window",
			start:    domain.MustTimeOfDay(22, 0),
			end:      domain.MustTimeOfDay(2, 0),
			expected: 240,
		},
		{
			name:     "end equal to start covers full day",
			start:    domain.MustTimeOfDay(23, 0),
			end:      domain.MustTimeOfDay(23, 0),
			expected: 1440,
		},
		{
			name:     "one minute window",
			start:    domain.MustTimeOfDay(12, 0),
			end:      domain.MustTimeOfDay(12, 1),
			expected: 1,
		},
		{
			name:     "midnight to midnight",
			start:    domain.MustTimeOfDay(0, 0),
			end:      domain.MustTimeOfDay(0, 0),
			expected: 1440,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := domain.NewTimeWindow(tt.start, tt.end)

			assert.Equal(t, tt.expected, w.DurationMinutes())
			assert.Equal(t, tt.start, w.Start())
			assert.Equal(t, tt.end, w.End())
		})
	}
}
