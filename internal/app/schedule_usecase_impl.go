package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/remember-me/notification-engine/internal/domain"
)

type scheduleUseCaseImpl struct {
	repo        domain.ScheduleRepository
	distributor *domain.IntervalDistributor
	calc        *domain.NextFireCalculator
}

func NewScheduleUseCase(repo domain.ScheduleRepository, distributor *domain.IntervalDistributor, calc *domain.NextFireCalculator) ScheduleUseCase {
	return &scheduleUseCaseImpl{
		repo:        repo,
		distributor: distributor,
		calc:        calc,
	}
}

func (uc *scheduleUseCaseImpl) Reschedule(ctx context.Context, input ReschedulePreferencesInput) (ScheduleInfoOutput, error) {
	slog.Debug("rescheduling user notifications",
		"user_id", input.UserID,
		"notifications_per_day", input.NotificationsPerDay,
		"timezone", input.Timezone,
		"windows_count", len(input.Windows),
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return ScheduleInfoOutput{}, NewValidationError("user_id", err.Error())
	}

	windows, err := parseWindows(input.Windows)
	if err != nil {
		return ScheduleInfoOutput{}, err
	}

	schedule, err := uc.rescheduleTx(ctx, userID, input, windows)
	if errors.Is(err, domain.ErrScheduleAlreadyExists) {
		// Lost a concurrent create for the same user. The row exists now,
		// so a second pass takes the update branch.
		slog.Debug("schedule created concurrently, retrying as update",
			"user_id", input.UserID,
		)

		schedule, err = uc.rescheduleTx(ctx, userID, input, windows)
	}

	if err != nil {
		mapped := mapPreferenceError(err)
		if IsValidationError(mapped) {
			return ScheduleInfoOutput{}, mapped
		}

		slog.Error("failed to persist schedule",
			"error", err,
			"user_id", input.UserID,
		)

		return ScheduleInfoOutput{}, mapped
	}

	slog.Info("schedule recomputed",
		"user_id", input.UserID,
		"scheduled_count", len(schedule.ScheduledTimes()),
		"next_fire_at", schedule.NextFireAt(),
	)

	return FromEntity(schedule), nil
}

// rescheduleTx runs the find-then-upsert inside one transaction so the read
// and the write cannot interleave with another writer for the same user.
func (uc *scheduleUseCaseImpl) rescheduleTx(
	ctx context.Context,
	userID domain.UserID,
	input ReschedulePreferencesInput,
	windows []domain.TimeWindow,
) (*domain.UserSchedule, error) {
	var schedule *domain.UserSchedule

	err := uc.repo.WithTx(ctx, func(txRepo domain.ScheduleRepository) error {
		existing, err := txRepo.FindByUserID(ctx, userID)
		if err != nil && !errors.Is(err, domain.ErrScheduleNotFound) {
			return err
		}

		created := existing == nil

		if created {
			schedule, err = domain.NewUserSchedule(userID, input.NotificationsPerDay, input.Timezone, windows, input.IsActive)
		} else {
			schedule = existing
			err = schedule.UpdatePreferences(input.NotificationsPerDay, input.Timezone, windows, input.IsActive)
		}

		if err != nil {
			return err
		}

		schedule.Reschedule(uc.distributor, uc.calc)

		if created {
			return txRepo.Save(ctx, schedule)
		}

		return txRepo.Update(ctx, schedule)
	})
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (uc *scheduleUseCaseImpl) SetActive(ctx context.Context, input SetActiveInput) (ScheduleInfoOutput, error) {
	slog.Debug("toggling schedule active flag",
		"user_id", input.UserID,
		"is_active", input.IsActive,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return ScheduleInfoOutput{}, NewValidationError("user_id", err.Error())
	}

	var schedule *domain.UserSchedule

	err = uc.repo.WithTx(ctx, func(txRepo domain.ScheduleRepository) error {
		schedule, err = txRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}

		schedule.SetActive(input.IsActive)

		if input.IsActive {
			schedule.Reschedule(uc.distributor, uc.calc)
		}

		return txRepo.Update(ctx, schedule)
	})
	if err != nil {
		if errors.Is(err, domain.ErrScheduleNotFound) {
			return ScheduleInfoOutput{}, fmt.Errorf("%w: %v", ErrNotFound, err)
		}

		slog.Error("failed to toggle schedule",
			"error", err,
			"user_id", input.UserID,
		)

		return ScheduleInfoOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.Info("schedule active flag updated",
		"user_id", input.UserID,
		"is_active", input.IsActive,
		"next_fire_at", schedule.NextFireAt(),
	)

	return FromEntity(schedule), nil
}

func (uc *scheduleUseCaseImpl) Remove(ctx context.Context, input RemoveScheduleInput) error {
	slog.Debug("removing schedule",
		"user_id", input.UserID,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return NewValidationError("user_id", err.Error())
	}

	if err := uc.repo.Delete(ctx, userID); err != nil {
		if !errors.Is(err, domain.ErrScheduleNotFound) {
			slog.Error("failed to remove schedule",
				"error", err,
				"user_id", input.UserID,
			)

			return fmt.Errorf("%w: %v", ErrInternalError, err)
		}

		slog.Info("schedule not found for removal (idempotency)",
			"user_id", input.UserID,
		)
	}

	slog.Debug("schedule removed",
		"user_id", input.UserID,
	)

	return nil
}

func (uc *scheduleUseCaseImpl) GetScheduleInfo(ctx context.Context, input GetScheduleInfoInput) (ScheduleInfoOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return ScheduleInfoOutput{}, NewValidationError("user_id", err.Error())
	}

	schedule, err := uc.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrScheduleNotFound) {
			return ScheduleInfoOutput{}, fmt.Errorf("%w: %v", ErrNotFound, err)
		}

		slog.Error("failed to load schedule info",
			"error", err,
			"user_id", input.UserID,
		)

		return ScheduleInfoOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return FromEntity(schedule), nil
}

func parseWindows(inputs []TimeWindowInput) ([]domain.TimeWindow, error) {
	if len(inputs) == 0 {
		return nil, NewValidationError("windows", domain.ErrEmptyWindows.Error())
	}

	windows := make([]domain.TimeWindow, 0, len(inputs))

	for i, w := range inputs {
		start, err := domain.ParseTimeOfDay(w.StartTime)
		if err != nil {
			return nil, NewValidationError(
				fmt.Sprintf("windows[%d].start_time", i), err.Error(),
			)
		}

		end, err := domain.ParseTimeOfDay(w.EndTime)
		if err != nil {
			return nil, NewValidationError(
				fmt.Sprintf("windows[%d].end_time", i), err.Error(),
			)
		}

		windows = append(windows, domain.NewTimeWindow(start, end))
	}

	return windows, nil
}

func mapPreferenceError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidNotificationsPerDay):
		return NewValidationError("notifications_per_day", err.Error())
	case errors.Is(err, domain.ErrInvalidTimezone):
		return NewValidationError("timezone", err.Error())
	case errors.Is(err, domain.ErrEmptyWindows):
		return NewValidationError("windows", err.Error())
	default:
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}
}
