package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/remember-me/notification-engine/internal/domain"
)

type TimeWindowJSON struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type TimeWindowsJSONB []TimeWindowJSON

func (w *TimeWindowsJSONB) Scan(value interface{}) error {
	if value == nil {
		*w = nil

		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan TimeWindowsJSONB: expected []byte")
	}

	return json.Unmarshal(bytes, w)
}

func (w TimeWindowsJSONB) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil //nolint:nilnil
	}

	return json.Marshal(w)
}

type TimeOfDayJSON struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type TimesOfDayJSONB []TimeOfDayJSON

func (t *TimesOfDayJSONB) Scan(value interface{}) error {
	if value == nil {
		*t = nil

		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan TimesOfDayJSONB: expected []byte")
	}

	return json.Unmarshal(bytes, t)
}

func (t TimesOfDayJSONB) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil //nolint:nilnil
	}

	return json.Marshal(t)
}

type UserScheduleModel struct {
	UserID              string           `gorm:"column:user_id;type:uuid;primaryKey"`
	IsActive            bool             `gorm:"column:is_active;type:boolean;not null;default:true;index:idx_user_schedules_due"`
	Timezone            string           `gorm:"column:timezone;type:varchar(255);not null"`
	Windows             TimeWindowsJSONB `gorm:"column:windows;type:jsonb;not null"`
	NotificationsPerDay int              `gorm:"column:notifications_per_day;type:integer;not null"`
	ScheduledTimes      TimesOfDayJSONB  `gorm:"column:scheduled_times;type:jsonb"`
	Cursor              int              `gorm:"column:cursor;type:integer;not null;default:0"`
	NextFireAt          *time.Time       `gorm:"column:next_fire_at;type:timestamptz;index:idx_user_schedules_due"`
	CreatedAt           time.Time        `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt           time.Time        `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (UserScheduleModel) TableName() string {
	return "user_schedules"
}

func (m *UserScheduleModel) ToEntity() (*domain.UserSchedule, error) {
	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	windows := make([]domain.TimeWindow, 0, len(m.Windows))
	for _, w := range m.Windows {
		start, err := domain.ParseTimeOfDay(w.StartTime)
		if err != nil {
			return nil, err
		}

		end, err := domain.ParseTimeOfDay(w.EndTime)
		if err != nil {
			return nil, err
		}

		windows = append(windows, domain.NewTimeWindow(start, end))
	}

	times := make([]domain.TimeOfDay, 0, len(m.ScheduledTimes))
	for _, t := range m.ScheduledTimes {
		tod, err := domain.NewTimeOfDay(t.Hour, t.Minute)
		if err != nil {
			return nil, err
		}

		times = append(times, tod)
	}

	return domain.ReconstituteUserSchedule(
		userID,
		m.IsActive,
		m.Timezone,
		windows,
		m.NotificationsPerDay,
		times,
		m.Cursor,
		m.NextFireAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func FromEntity(e *domain.UserSchedule) *UserScheduleModel {
	windows := make(TimeWindowsJSONB, 0, len(e.Windows()))
	for _, w := range e.Windows() {
		windows = append(windows, TimeWindowJSON{
			StartTime: w.Start().String(),
			EndTime:   w.End().String(),
		})
	}

	times := make(TimesOfDayJSONB, 0, len(e.ScheduledTimes()))
	for _, t := range e.ScheduledTimes() {
		times = append(times, TimeOfDayJSON{
			Hour:   t.Hour(),
			Minute: t.Minute(),
		})
	}

	return &UserScheduleModel{
		UserID:              e.UserID().String(),
		IsActive:            e.IsActive(),
		Timezone:            e.Timezone(),
		Windows:             windows,
		NotificationsPerDay: e.NotificationsPerDay(),
		ScheduledTimes:      times,
		Cursor:              e.Cursor(),
		NextFireAt:          e.NextFireAt(),
		CreatedAt:           e.CreatedAt(),
		UpdatedAt:           e.UpdatedAt(),
	}
}
