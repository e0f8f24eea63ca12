package domain

import (
	"context"
	"time"
)

type ScheduleRepository interface {
	Save(ctx context.Context, schedule *UserSchedule) error
	FindByUserID(ctx context.Context, userID UserID) (*UserSchedule, error)
	// FindDue returns up to limit active schedules whose next-fire instant
	// is at or before now.
	FindDue(ctx context.Context, now time.Time, limit int) ([]*UserSchedule, error)
	// FindUninitialized returns active schedules with no next-fire instant,
	// left dangling by a crash between the preference write and the
	// schedule computation.
	FindUninitialized(ctx context.Context) ([]*UserSchedule, error)
	Update(ctx context.Context, schedule *UserSchedule) error
	Delete(ctx context.Context, userID UserID) error
	WithTx(ctx context.Context, fn func(repo ScheduleRepository) error) error
}
