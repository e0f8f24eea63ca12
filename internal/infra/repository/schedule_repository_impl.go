package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/remember-me/notification-engine/internal/domain"
)

type scheduleRepositoryImpl struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) domain.ScheduleRepository {
	return &scheduleRepositoryImpl{
		db: db,
	}
}

func (r *scheduleRepositoryImpl) Save(ctx context.Context, schedule *domain.UserSchedule) error {
	slog.Debug("saving schedule to database",
		"user_id", schedule.UserID().String(),
	)

	m := FromEntity(schedule)

	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			slog.Debug("schedule already exists",
				"user_id", schedule.UserID().String(),
			)

			return domain.ErrScheduleAlreadyExists
		}

		slog.Error("failed to save schedule to database",
			"user_id", schedule.UserID().String(),
			"error", result.Error,
		)

		return result.Error
	}

	slog.Debug("schedule saved to database",
		"user_id", schedule.UserID().String(),
	)

	return nil
}

func (r *scheduleRepositoryImpl) FindByUserID(ctx context.Context, userID domain.UserID) (*domain.UserSchedule, error) {
	slog.Debug("finding schedule by user ID",
		"user_id", userID.String(),
	)

	var m UserScheduleModel

	result := r.db.WithContext(ctx).Where("user_id = ?", userID.String()).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			slog.Debug("schedule not found",
				"user_id", userID.String(),
			)

			return nil, domain.ErrScheduleNotFound
		}

		slog.Error("failed to find schedule by user ID",
			"user_id", userID.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return m.ToEntity()
}

func (r *scheduleRepositoryImpl) FindDue(ctx context.Context, now time.Time, limit int) ([]*domain.UserSchedule, error) {
	slog.Debug("finding due schedules",
		"now", now,
		"limit", limit,
	)

	var models []UserScheduleModel

	result := r.db.WithContext(ctx).
		Where("is_active = ? AND next_fire_at IS NOT NULL AND next_fire_at <= ?", true, now).
		Order("next_fire_at ASC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		slog.Error("failed to find due schedules",
			"now", now,
			"error", result.Error,
		)

		return nil, result.Error
	}

	return r.toEntitiesSkippingMalformed(models), nil
}

func (r *scheduleRepositoryImpl) FindUninitialized(ctx context.Context) ([]*domain.UserSchedule, error) {
	slog.Debug("finding uninitialized active schedules")

	var models []UserScheduleModel

	result := r.db.WithContext(ctx).
		Where("is_active = ? AND next_fire_at IS NULL", true).
		Find(&models)

	if result.Error != nil {
		slog.Error("failed to find uninitialized schedules",
			"error", result.Error,
		)

		return nil, result.Error
	}

	return r.toEntitiesSkippingMalformed(models), nil
}

// toEntitiesSkippingMalformed drops rows that no longer reconstitute (for
// example a timezone removed from the tz database). One corrupt row must
// not abort a sweep batch for everyone else.
func (r *scheduleRepositoryImpl) toEntitiesSkippingMalformed(models []UserScheduleModel) []*domain.UserSchedule {
	schedules := make([]*domain.UserSchedule, 0, len(models))

	for _, m := range models {
		schedule, err := m.ToEntity()
		if err != nil {
			slog.Error("skipping malformed stored schedule",
				"user_id", m.UserID,
				"error", err,
			)

			continue
		}

		schedules = append(schedules, schedule)
	}

	return schedules
}

func (r *scheduleRepositoryImpl) Update(ctx context.Context, schedule *domain.UserSchedule) error {
	slog.Debug("updating schedule in database",
		"user_id", schedule.UserID().String(),
	)

	m := FromEntity(schedule)

	// Select("*") forces zero values through: clearing next_fire_at to NULL
	// and is_active to false must persist.
	result := r.db.WithContext(ctx).
		Model(&UserScheduleModel{}).
		Where("user_id = ?", m.UserID).
		Select("*").
		Omit("user_id", "created_at").
		Updates(m)

	if result.Error != nil {
		slog.Error("failed to update schedule in database",
			"user_id", schedule.UserID().String(),
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		slog.Debug("schedule not found for update",
			"user_id", schedule.UserID().String(),
		)

		return domain.ErrScheduleNotFound
	}

	slog.Debug("schedule updated in database",
		"user_id", schedule.UserID().String(),
	)

	return nil
}

func (r *scheduleRepositoryImpl) Delete(ctx context.Context, userID domain.UserID) error {
	slog.Debug("deleting schedule from database",
		"user_id", userID.String(),
	)

	result := r.db.WithContext(ctx).Where("user_id = ?", userID.String()).Delete(&UserScheduleModel{})
	if result.Error != nil {
		slog.Error("failed to delete schedule from database",
			"user_id", userID.String(),
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		slog.Debug("schedule not found for deletion",
			"user_id", userID.String(),
		)

		return domain.ErrScheduleNotFound
	}

	slog.Debug("schedule deleted from database",
		"user_id", userID.String(),
	)

	return nil
}

func (r *scheduleRepositoryImpl) WithTx(ctx context.Context, fn func(repo domain.ScheduleRepository) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		slog.Error("failed to begin transaction",
			"error", tx.Error,
		)

		return tx.Error
	}

	txRepo := &scheduleRepositoryImpl{db: tx}

	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			slog.Error("failed to rollback transaction",
				"error", rbErr,
				"original_error", err,
			)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		slog.Error("failed to commit transaction",
			"error", err,
		)

		return err
	}

	return nil
}
