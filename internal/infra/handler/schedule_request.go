package handler

type TimeWindowRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type ReschedulePreferencesRequest struct {
	NotificationsPerDay int                 `json:"notifications_per_day" binding:"required,min=1,max=24"`
	Timezone            string              `json:"timezone" binding:"required"`
	Windows             []TimeWindowRequest `json:"windows" binding:"required,min=1,dive"`
	IsActive            *bool               `json:"is_active"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
