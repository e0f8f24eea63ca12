package app

import (
	"context"
)

type ScheduleUseCase interface {
	Reschedule(ctx context.Context, input ReschedulePreferencesInput) (ScheduleInfoOutput, error)
	SetActive(ctx context.Context, input SetActiveInput) (ScheduleInfoOutput, error)
	Remove(ctx context.Context, input RemoveScheduleInput) error
	GetScheduleInfo(ctx context.Context, input GetScheduleInfoInput) (ScheduleInfoOutput, error)
}
