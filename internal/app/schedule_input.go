package app

type TimeWindowInput struct {
	StartTime string
	EndTime   string
}

type ReschedulePreferencesInput struct {
	UserID              string
	NotificationsPerDay int
	Timezone            string
	Windows             []TimeWindowInput
	IsActive            bool
}

type SetActiveInput struct {
	UserID   string
	IsActive bool
}

type RemoveScheduleInput struct {
	UserID string
}

type GetScheduleInfoInput struct {
	UserID string
}
