// Package scheduler owns the periodic sweep that detects due schedules,
// dispatches their reminders, and advances each schedule to its next slot.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/remember-me/notification-engine/internal/domain"
	"github.com/remember-me/notification-engine/internal/infra/notes"
	"github.com/remember-me/notification-engine/internal/infra/pubsub"
	"github.com/remember-me/notification-engine/internal/observability/logging"
)

// NotePicker selects one reminder-worthy note for a user at delivery time.
type NotePicker interface {
	PickOne(ctx context.Context, userID string) (*notes.ReminderContent, error)
}

type Config struct {
	// SweepInterval is the tick cadence. Minute granularity is the
	// engine's precision contract; anything finer buys nothing.
	SweepInterval time.Duration
	// BatchSize bounds how many due schedules one tick processes.
	BatchSize int
	// MaxInFlight bounds concurrent per-schedule delivery units within a
	// tick.
	MaxInFlight int
}

type Scheduler struct {
	repo        domain.ScheduleRepository
	distributor *domain.IntervalDistributor
	calc        *domain.NextFireCalculator
	picker      NotePicker
	publisher   pubsub.Publisher
	clock       domain.Clock
	cfg         Config
}

func New(
	repo domain.ScheduleRepository,
	distributor *domain.IntervalDistributor,
	calc *domain.NextFireCalculator,
	picker NotePicker,
	publisher pubsub.Publisher,
	clock domain.Clock,
	cfg Config,
) *Scheduler {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}

	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = 8
	}

	return &Scheduler{
		repo:        repo,
		distributor: distributor,
		calc:        calc,
		picker:      picker,
		publisher:   publisher,
		clock:       clock,
		cfg:         cfg,
	}
}

// Run recovers dangling schedules, then sweeps on a fixed cadence until ctx
// is canceled. Ticks execute synchronously inside the loop, so two sweeps
// can never overlap and no schedule can be advanced twice for one slot.
func (s *Scheduler) Run(ctx context.Context) {
	ctx = logging.WithModule(ctx, logging.ModuleSweep)

	s.Recover(ctx)

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "scheduler started",
		"sweep_interval", s.cfg.SweepInterval,
		"batch_size", s.cfg.BatchSize,
	)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "scheduler stopping")

			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Recover re-initializes active schedules whose next-fire instant was never
// computed, or was cleared and never restored before a crash.
func (s *Scheduler) Recover(ctx context.Context) {
	ctx = logging.WithModule(ctx, logging.ModuleSweep)

	schedules, err := s.repo.FindUninitialized(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "recovery query failed",
			"error", err,
		)

		return
	}

	recovered := 0

	for _, schedule := range schedules {
		schedule.Reschedule(s.distributor, s.calc)

		if err := s.repo.Update(ctx, schedule); err != nil {
			slog.ErrorContext(ctx, "failed to persist recovered schedule",
				"user_id", schedule.UserID().String(),
				"error", err,
			)

			continue
		}

		recovered++
	}

	slog.InfoContext(ctx, "recovery pass complete",
		"candidates", len(schedules),
		"recovered", recovered,
	)
}

// Sweep executes one tick: query due schedules and process each one
// independently. A failure in one schedule never blocks the others.
func (s *Scheduler) Sweep(ctx context.Context) {
	ctx = logging.WithModule(ctx, logging.ModuleSweep)

	now := s.clock.Now()

	due, err := s.repo.FindDue(ctx, now, s.cfg.BatchSize)
	if err != nil {
		slog.ErrorContext(ctx, "due-schedule query failed",
			"error", err,
		)

		return
	}

	if len(due) == 0 {
		return
	}

	slog.InfoContext(ctx, "processing due schedules",
		"count", len(due),
	)

	var wg sync.WaitGroup

	sem := make(chan struct{}, s.cfg.MaxInFlight)

	for _, schedule := range due {
		wg.Add(1)
		sem <- struct{}{}

		go func(schedule *domain.UserSchedule) {
			defer wg.Done()
			defer func() { <-sem }()

			s.process(ctx, schedule)
		}(schedule)
	}

	wg.Wait()
}

// process delivers one due reminder and advances the schedule. The schedule
// advances whether delivery succeeded or not: retrying the same slot would
// desynchronize the evenly-spaced cadence, and the next slot fires on
// schedule regardless.
func (s *Scheduler) process(ctx context.Context, schedule *domain.UserSchedule) {
	userID := schedule.UserID().String()

	if err := s.deliver(ctx, schedule); err != nil {
		slog.ErrorContext(ctx, "reminder delivery failed",
			"user_id", userID,
			"slot_index", schedule.Cursor(),
			"error", err,
		)
	}

	schedule.AdvanceAfterFire(s.calc)

	if err := s.repo.Update(ctx, schedule); err != nil {
		if errors.Is(err, domain.ErrScheduleNotFound) {
			// Raced with a preference removal between the due-query and
			// this advance.
			slog.DebugContext(ctx, "schedule disappeared during sweep",
				"user_id", userID,
			)

			return
		}

		slog.ErrorContext(ctx, "failed to persist advanced schedule",
			"user_id", userID,
			"error", err,
		)

		return
	}

	slog.DebugContext(ctx, "schedule advanced",
		"user_id", userID,
		"cursor", schedule.Cursor(),
		"next_fire_at", schedule.NextFireAt(),
	)
}

func (s *Scheduler) deliver(ctx context.Context, schedule *domain.UserSchedule) error {
	userID := schedule.UserID().String()

	content, err := s.picker.PickOne(ctx, userID)
	if err != nil {
		return err
	}

	if content == nil {
		slog.WarnContext(ctx, "no note available, skipping delivery",
			"user_id", userID,
		)

		return nil
	}

	if s.publisher == nil {
		slog.WarnContext(ctx, "no publisher configured, dropping reminder",
			"user_id", userID,
			"note_id", content.NoteID,
		)

		return nil
	}

	event := &pubsub.ReminderDueEvent{
		UserID:    userID,
		NoteID:    content.NoteID,
		Text:      content.Text,
		Source:    content.Source,
		SlotIndex: schedule.Cursor(),
		FiredAt:   s.clock.Now(),
	}

	if err := s.publisher.PublishReminderDue(ctx, event); err != nil {
		return err
	}

	slog.InfoContext(ctx, "reminder dispatched",
		"user_id", userID,
		"note_id", content.NoteID,
		"slot_index", schedule.Cursor(),
	)

	return nil
}
