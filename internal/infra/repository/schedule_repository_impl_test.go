package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remember-me/notification-engine/internal/domain"
	"github.com/remember-me/notification-engine/internal/infra/repository"
	"github.com/remember-me/notification-engine/internal/testutil"
)

func setupRepositoryTest(t *testing.T) (domain.ScheduleRepository, *testutil.TestDB) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		tdb.TeardownTestDB(t)
	})

	return repository.NewScheduleRepository(tdb.DB), tdb
}

func newScheduleEntity(t *testing.T, active bool, nextFireAt *time.Time) *domain.UserSchedule {
	t.Helper()

	userID, err := domain.UserIDFromUUID(uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	var times []domain.TimeOfDay
	cursor := 0

	if nextFireAt != nil {
		times = []domain.TimeOfDay{
			domain.MustTimeOfDay(10, 30),
			domain.MustTimeOfDay(13, 30),
			domain.MustTimeOfDay(16, 30),
		}
	}

	schedule, err := domain.ReconstituteUserSchedule(
		userID, active, "Asia/Tokyo",
		[]domain.TimeWindow{domain.NewTimeWindow(
			domain.MustTimeOfDay(9, 0),
			domain.MustTimeOfDay(18, 0),
		)},
		3, times, cursor, nextFireAt,
		time.Now().UTC(), time.Now().UTC(),
	)
	require.NoError(t, err)

	return schedule
}

func TestScheduleRepositorySaveAndFindSuccess(t *testing.T) {
	repo, tdb := setupRepositoryTest(t)
	tdb.CleanTable(t)

	ctx := context.Background()
	fireAt := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	schedule := newScheduleEntity(t, true, &fireAt)

	err := repo.Save(ctx, schedule)
	require.NoError(t, err)

	found, err := repo.FindByUserID(ctx, schedule.UserID())
	require.NoError(t, err)

	assert.True(t, schedule.UserID().Equals(found.UserID()))
	assert.True(t, found.IsActive())
	assert.Equal(t, "Asia/Tokyo", found.Timezone())
	assert.Equal(t, 3, found.NotificationsPerDay())
	assert.Len(t, found.ScheduledTimes(), 3)
	require.NotNil(t, found.NextFireAt())
	assert.True(t, fireAt.Equal(*found.NextFireAt()))
}

func TestScheduleRepositorySaveDuplicateError(t *testing.T) {
	repo, tdb := setupRepositoryTest(t)
	tdb.CleanTable(t)

	ctx := context.Background()
	fireAt := time.Now().UTC().Add(time.Hour)
	schedule := newScheduleEntity(t, true, &fireAt)

	require.NoError(t, repo.Save(ctx, schedule))

	err := repo.Save(ctx, schedule)

	assert.ErrorIs(t, err, domain.ErrScheduleAlreadyExists)
}

func TestScheduleRepositoryFindByUserIDNotFound(t *testing.T) {
	repo, tdb := setupRepositoryTest(t)
	tdb.CleanTable(t)

	userID, err := domain.UserIDFromUUID(uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	_, err = repo.FindByUserID(context.Background(), userID)

	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
}

func TestScheduleRepositoryFindDueSuccess(t *testing.T) {
	repo, tdb := setupRepositoryTest(t)
	tdb.CleanTable(t)

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	pastLate := now.Add(-time.Minute)
	pastEarly := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	dueLate := newScheduleEntity(t, true, &pastLate)
	dueEarly := newScheduleEntity(t, true, &pastEarly)
	notYetDue := newScheduleEntity(t, true, &future)
	inactive := newScheduleEntity(t, false, nil)
	uninitialized := newScheduleEntity(t, true, nil)

	for _, s := range []*domain.UserSchedule{dueLate, dueEarly, notYetDue, inactive, uninitialized} {
		require.NoError(t, repo.Save(ctx, s))
	}

	due, err := repo.FindDue(ctx, now, 100)
	require.NoError(t, err)

	require.Len(t, due, 2)

	// Ordered by next_fire_at ascending, oldest overdue first.
	assert.True(t, dueEarly.UserID().Equals(due[0].UserID()))
	assert.True(t, dueLate.UserID().Equals(due[1].UserID()))
}

func TestScheduleRepositoryFindDueRespectsLimit(t *testing.T) {
	repo, tdb := setupRepositoryTest(t)
	tdb.CleanTable(t)

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 5; i++ {
		fireAt := now.Add(-time.Duration(i+1) * time.Minute)
		require.NoError(t, repo.Save(ctx, newScheduleEntity(t, true, &fireAt)))
	}

	due, err := repo.FindDue(ctx, now, 3)
	require.NoError(t, err)

	assert.Len(t, due, 3)
}

func TestScheduleRepositoryFindDueSkipsMalformedRows(t *testing.T) {
	repo, tdb := setupRepositoryTest(t)
	tdb.CleanTable(t)

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	past := now.Add(-time.Minute)

	healthy := newScheduleEntity(t, true, &past)
	require.NoError(t, repo.Save(ctx, healthy))

	// A row whose timezone no longer loads cannot be reconstituted.
	err := tdb.DB.Exec(
		`INSERT INTO user_schedules
		 (user_id, is_active, timezone, windows, notifications_per_day, scheduled_times, cursor, next_fire_at, created_at, updated_at)
		 VALUES (?, true, 'Atlantis/Sunken', '[{"start_time":"09:00","end_time":"18:00"}]', 3, '[{"hour":10,"minute":30}]', 0, ?, now(), now())`,
		uuid.Must(uuid.NewV7()).String(), past,
	).Error
	require.NoError(t, err)

	due, err := repo.FindDue(ctx, now, 100)
	require.NoError(t, err)

	require.Len(t, due, 1)
	assert.True(t, healthy.UserID().Equals(due[0].UserID()))
}

func TestScheduleRepositoryFindUninitializedSuccess(t *testing.T) {
	repo, tdb := setupRepositoryTest(t)
	tdb.CleanTable(t)

	ctx := context.Background()
	fireAt := time.Now().UTC().Add(time.Hour)

	dangling := newScheduleEntity(t, true, nil)
	initialized := newScheduleEntity(t, true, &fireAt)
	inactive := newScheduleEntity(t, false, nil)

	for _, s := range []*domain.UserSchedule{dangling, initialized, inactive} {
		require.NoError(t, repo.Save(ctx, s))
	}

	found, err := repo.FindUninitialized(ctx)
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.True(t, dangling.UserID().Equals(found[0].UserID()))
}

func TestScheduleRepositoryUpdatePersistsZeroValues(t *testing.T) {
	repo, tdb := setupRepositoryTest(t)
	tdb.CleanTable(t)

	ctx := context.Background()
	fireAt := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	schedule := newScheduleEntity(t, true, &fireAt)

	require.NoError(t, repo.Save(ctx, schedule))

	// Deactivation clears the derived state. Both the false flag and the
	// NULL next_fire_at must reach the database.
	schedule.SetActive(false)

	require.NoError(t, repo.Update(ctx, schedule))

	found, err := repo.FindByUserID(ctx, schedule.UserID())
	require.NoError(t, err)

	assert.False(t, found.IsActive())
	assert.Nil(t, found.NextFireAt())
	assert.Empty(t, found.ScheduledTimes())
	assert.Zero(t, found.Cursor())
}

func TestScheduleRepositoryUpdateNotFound(t *testing.T) {
	repo, tdb := setupRepositoryTest(t)
	tdb.CleanTable(t)

	fireAt := time.Now().UTC().Add(time.Hour)
	schedule := newScheduleEntity(t, true, &fireAt)

	err := repo.Update(context.Background(), schedule)

	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
}

func TestScheduleRepositoryDeleteSuccess(t *testing.T) {
	repo, tdb := setupRepositoryTest(t)
	tdb.CleanTable(t)

	ctx := context.Background()
	fireAt := time.Now().UTC().Add(time.Hour)
	schedule := newScheduleEntity(t, true, &fireAt)

	require.NoError(t, repo.Save(ctx, schedule))
	require.NoError(t, repo.Delete(ctx, schedule.UserID()))

	_, err := repo.FindByUserID(ctx, schedule.UserID())

	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
}

func TestScheduleRepositoryWithTxRollback(t *testing.T) {
	repo, tdb := setupRepositoryTest(t)
	tdb.CleanTable(t)

	ctx := context.Background()
	fireAt := time.Now().UTC().Add(time.Hour)
	schedule := newScheduleEntity(t, true, &fireAt)

	err := repo.WithTx(ctx, func(txRepo domain.ScheduleRepository) error {
		if err := txRepo.Save(ctx, schedule); err != nil {
			return err
		}

		return assert.AnError
	})
	require.Error(t, err)

	_, err = repo.FindByUserID(ctx, schedule.UserID())

	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
}
