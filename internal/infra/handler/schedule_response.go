package handler

import (
	"time"

	"github.com/remember-me/notification-engine/internal/app"
)

type TimeWindowResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ScheduledTimeResponse struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type ScheduleInfoResponse struct {
	UserID              string                  `json:"user_id"`
	IsActive            bool                    `json:"is_active"`
	Timezone            string                  `json:"timezone"`
	NotificationsPerDay int                     `json:"notifications_per_day"`
	Windows             []TimeWindowResponse    `json:"windows"`
	ScheduledTimes      []ScheduledTimeResponse `json:"scheduled_times"`
	Cursor              int                     `json:"cursor"`
	NextFireAt          *time.Time              `json:"next_fire_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func FromDTO(output app.ScheduleInfoOutput) ScheduleInfoResponse {
	windows := make([]TimeWindowResponse, 0, len(output.Windows))
	for _, w := range output.Windows {
		windows = append(windows, TimeWindowResponse{
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	times := make([]ScheduledTimeResponse, 0, len(output.ScheduledTimes))
	for _, t := range output.ScheduledTimes {
		times = append(times, ScheduledTimeResponse{
			Hour:   t.Hour,
			Minute: t.Minute,
		})
	}

	return ScheduleInfoResponse{
		UserID:              output.UserID,
		IsActive:            output.IsActive,
		Timezone:            output.Timezone,
		NotificationsPerDay: output.NotificationsPerDay,
		Windows:             windows,
		ScheduledTimes:      times,
		Cursor:              output.Cursor,
		NextFireAt:          output.NextFireAt,
	}
}
