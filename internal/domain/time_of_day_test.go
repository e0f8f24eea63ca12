package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/remember-me/notification-engine/internal/domain"
)

func TestParseTimeOfDaySuccess(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedHour   int
		expectedMinute int
	}{
		{
			name:           "morning time",
			input:          "09:30",
			expectedHour:   9,
			expectedMinute: 30,
		},
		{
			name:           "single digit hour",
			input:          "9:30",
			expectedHour:   9,
			expectedMinute: 30,
		},
		{
			name:           "midnight",
			input:          "00:00",
			expectedHour:   0,
			expectedMinute: 0,
		},
		{
			name:           "end of day",
			input:          "23:59",
			expectedHour:   23,
			expectedMinute: 59,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tod, err := domain.ParseTimeOfDay(tt.input)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedHour, tod.Hour())
			assert.Equal(t, tt.expectedMinute, tod.Minute())
		})
	}
}

func TestParseTimeOfDayError(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "empty string",
			input: "",
		},
		{
			name:  "hour out of range",
			input: "24:00",
		},
		{
			name:  "minute out of range",
			input: "12:60",
		},
		{
			name:  "missing minute",
			input: "12",
		},
		{
			name:  "not a time",
			input: "noon",
		},
		{
			name:  "trailing garbage",
			input: "12:30pm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseTimeOfDay(tt.input)

			assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)
		})
	}
}

func TestNewTimeOfDayError(t *testing.T) {
	tests := []struct {
		name   string
		hour   int
		minute int
	}{
		{
			name:   "negative hour",
			hour:   -1,
			minute: 0,
		},
		{
			name:   "hour too large",
			hour:   24,
			minute: 0,
		},
		{
			name:   "negative minute",
			hour:   12,
			minute: -1,
		},
		{
			name:   "minute too large",
			hour:   12,
			minute: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewTimeOfDay(tt.hour, tt.minute)

			assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)
		})
	}
}

func TestTimeOfDayMinuteOfDaySuccess(t *testing.T) {
	tests := []struct {
		name     string
		tod      domain.TimeOfDay
		expected int
	}{
		{
			name:     "midnight",
			tod:      domain.MustTimeOfDay(0, 0),
			expected: 0,
		},
		{
			name:     "mid morning",
			tod:      domain.MustTimeOfDay(10, 30),
			expected: 630,
		},
		{
			name:     "end of day",
			tod:      domain.MustTimeOfDay(23, 59),
			expected: 1439,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tod.MinuteOfDay())
		})
	}
}

func TestTimeOfDayAfterSuccess(t *testing.T) {
	tests := []struct {
		name     string
		a        domain.TimeOfDay
		b        domain.TimeOfDay
		expected bool
	}{
		{
			name:     "later hour",
			a:        domain.MustTimeOfDay(13, 0),
			b:        domain.MustTimeOfDay(9, 30),
			expected: true,
		},
		{
			name:     "same hour later minute",
			a:        domain.MustTimeOfDay(13, 30),
			b:        domain.MustTimeOfDay(13, 0),
			expected: true,
		},
		{
			name:     "equal times are not after",
			a:        domain.MustTimeOfDay(13, 0),
			b:        domain.MustTimeOfDay(13, 0),
			expected: false,
		},
		{
			name:     "earlier time",
			a:        domain.MustTimeOfDay(9, 0),
			b:        domain.MustTimeOfDay(17, 0),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.After(tt.b))
		})
	}
}

func TestTimeOfDayStringSuccess(t *testing.T) {
	tests := []struct {
		name     string
		tod      domain.TimeOfDay
		expected string
	}{
		{
			name:     "zero padded",
			tod:      domain.MustTimeOfDay(9, 5),
			expected: "09:05",
		},
		{
			name:     "round-trip through parse",
			tod:      domain.MustTimeOfDay(22, 45),
			expected: "22:45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tod.String())

			parsed, err := domain.ParseTimeOfDay(tt.tod.String())
			assert.NoError(t, err)
			assert.Equal(t, tt.tod, parsed)
		})
	}
}
