package app

import (
	"time"

	"github.com/remember-me/notification-engine/internal/domain"
)

type TimeWindowOutput struct {
	StartTime string
	EndTime   string
}

type TimeOfDayOutput struct {
	Hour   int
	Minute int
}

type ScheduleInfoOutput struct {
	UserID              string
	IsActive            bool
	Timezone            string
	NotificationsPerDay int
	Windows             []TimeWindowOutput
	ScheduledTimes      []TimeOfDayOutput
	Cursor              int
	NextFireAt          *time.Time
}

func FromEntity(schedule *domain.UserSchedule) ScheduleInfoOutput {
	windows := make([]TimeWindowOutput, 0, len(schedule.Windows()))
	for _, w := range schedule.Windows() {
		windows = append(windows, TimeWindowOutput{
			StartTime: w.Start().String(),
			EndTime:   w.End().String(),
		})
	}

	times := make([]TimeOfDayOutput, 0, len(schedule.ScheduledTimes()))
	for _, t := range schedule.ScheduledTimes() {
		times = append(times, TimeOfDayOutput{
			Hour:   t.Hour(),
			Minute: t.Minute(),
		})
	}

	return ScheduleInfoOutput{
		UserID:              schedule.UserID().String(),
		IsActive:            schedule.IsActive(),
		Timezone:            schedule.Timezone(),
		NotificationsPerDay: schedule.NotificationsPerDay(),
		Windows:             windows,
		ScheduledTimes:      times,
		Cursor:              schedule.Cursor(),
		NextFireAt:          schedule.NextFireAt(),
	}
}
