package domain

import "errors"

var (
	ErrScheduleNotFound      = errors.New("schedule not found")
	ErrScheduleAlreadyExists = errors.New("schedule already exists")

	ErrInvalidTimeOfDay           = errors.New("invalid time of day: expected HH:mm in 24-hour format")
	ErrInvalidTimezone            = errors.New("invalid timezone: must be a valid IANA identifier")
	ErrEmptyWindows               = errors.New("at least one time window is required")
	ErrInvalidNotificationsPerDay = errors.New("notifications per day must be between 1 and 24")
)
