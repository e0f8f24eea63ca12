package domain

import (
	"time"
)

const (
	MinNotificationsPerDay = 1
	MaxNotificationsPerDay = 24
)

// UserSchedule is the per-user scheduling position: the distributed
// times-of-day, the cursor pointing at the next one to fire, and the
// absolute next-fire instant. At most one exists per user.
type UserSchedule struct {
	userID              UserID
	isActive            bool
	timezone            string
	location            *time.Location
	windows             []TimeWindow
	notificationsPerDay int
	scheduledTimes      []TimeOfDay
	cursor              int
	nextFireAt          *time.Time
	createdAt           time.Time
	updatedAt           time.Time
}

func NewUserSchedule(
	userID UserID,
	notificationsPerDay int,
	timezone string,
	windows []TimeWindow,
	isActive bool,
) (*UserSchedule, error) {
	if notificationsPerDay < MinNotificationsPerDay || notificationsPerDay > MaxNotificationsPerDay {
		return nil, ErrInvalidNotificationsPerDay
	}

	if len(windows) == 0 {
		return nil, ErrEmptyWindows
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, ErrInvalidTimezone
	}

	now := time.Now()

	return &UserSchedule{
		userID:              userID,
		isActive:            isActive,
		timezone:            timezone,
		location:            loc,
		windows:             windows,
		notificationsPerDay: notificationsPerDay,
		scheduledTimes:      nil,
		cursor:              0,
		nextFireAt:          nil,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

// ReconstituteUserSchedule rebuilds a schedule from persisted state. A
// timezone that no longer loads makes the stored row unusable, so it is
// rejected here rather than deferred to the first advance. A cursor outside
// the stored times is clamped to zero.
func ReconstituteUserSchedule(
	userID UserID,
	isActive bool,
	timezone string,
	windows []TimeWindow,
	notificationsPerDay int,
	scheduledTimes []TimeOfDay,
	cursor int,
	nextFireAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*UserSchedule, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, ErrInvalidTimezone
	}

	if cursor < 0 || cursor >= len(scheduledTimes) {
		cursor = 0
	}

	return &UserSchedule{
		userID:              userID,
		isActive:            isActive,
		timezone:            timezone,
		location:            loc,
		windows:             windows,
		notificationsPerDay: notificationsPerDay,
		scheduledTimes:      scheduledTimes,
		cursor:              cursor,
		nextFireAt:          nextFireAt,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

// UpdatePreferences replaces the three scheduling inputs. The derived state
// is stale afterwards; callers follow up with Reschedule.
func (s *UserSchedule) UpdatePreferences(notificationsPerDay int, timezone string, windows []TimeWindow, isActive bool) error {
	if notificationsPerDay < MinNotificationsPerDay || notificationsPerDay > MaxNotificationsPerDay {
		return ErrInvalidNotificationsPerDay
	}

	if len(windows) == 0 {
		return ErrEmptyWindows
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return ErrInvalidTimezone
	}

	s.notificationsPerDay = notificationsPerDay
	s.timezone = timezone
	s.location = loc
	s.windows = windows
	s.isActive = isActive
	s.updatedAt = time.Now()

	return nil
}

// Reschedule recomputes the distributed times and the next-fire position
// from the current preferences. An inactive schedule is cleared instead.
func (s *UserSchedule) Reschedule(distributor *IntervalDistributor, calc *NextFireCalculator) {
	if !s.isActive || len(s.windows) == 0 {
		s.clear()

		return
	}

	s.scheduledTimes = distributor.Distribute(s.notificationsPerDay, s.windows)
	s.cursor, s.nextFireAt = calc.Reinitialize(s.scheduledTimes, s.location)
	s.updatedAt = time.Now()
}

// AdvanceAfterFire moves past the slot that just fired.
func (s *UserSchedule) AdvanceAfterFire(calc *NextFireCalculator) {
	if len(s.scheduledTimes) == 0 {
		s.nextFireAt = nil

		return
	}

	s.cursor, s.nextFireAt = calc.AdvanceAfterFire(s.scheduledTimes, s.location, s.cursor)
	s.updatedAt = time.Now()
}

// SetActive toggles the active flag. Activation leaves derived state stale
// until the caller reschedules; deactivation clears it immediately.
func (s *UserSchedule) SetActive(active bool) {
	s.isActive = active

	if !active {
		s.clear()
	}

	s.updatedAt = time.Now()
}

func (s *UserSchedule) clear() {
	s.scheduledTimes = nil
	s.cursor = 0
	s.nextFireAt = nil
}

func (s *UserSchedule) IsDue(now time.Time) bool {
	return s.isActive && s.nextFireAt != nil && !s.nextFireAt.After(now)
}

func (s *UserSchedule) UserID() UserID {
	return s.userID
}

func (s *UserSchedule) IsActive() bool {
	return s.isActive
}

func (s *UserSchedule) Timezone() string {
	return s.timezone
}

func (s *UserSchedule) Windows() []TimeWindow {
	return s.windows
}

func (s *UserSchedule) NotificationsPerDay() int {
	return s.notificationsPerDay
}

func (s *UserSchedule) ScheduledTimes() []TimeOfDay {
	return s.scheduledTimes
}

func (s *UserSchedule) Cursor() int {
	return s.cursor
}

func (s *UserSchedule) NextFireAt() *time.Time {
	return s.nextFireAt
}

func (s *UserSchedule) CreatedAt() time.Time {
	return s.createdAt
}

func (s *UserSchedule) UpdatedAt() time.Time {
	return s.updatedAt
}
