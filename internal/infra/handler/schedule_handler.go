package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remember-me/notification-engine/internal/app"
)

type ScheduleHandler struct {
	useCase app.ScheduleUseCase
}

func NewScheduleHandler(useCase app.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{
		useCase: useCase,
	}
}

// Reschedule creates or replaces a user's notification preferences and
// recomputes the derived schedule in the same request.
func (h *ScheduleHandler) Reschedule(c *gin.Context) {
	userID := c.Param("user_id")

	slog.Info("handling reschedule request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", userID,
	)

	var req ReschedulePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("request validation failed",
			"error", err,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Field:   "",
		})

		return
	}

	windows := make([]app.TimeWindowInput, 0, len(req.Windows))
	for _, w := range req.Windows {
		windows = append(windows, app.TimeWindowInput{
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	input := app.ReschedulePreferencesInput{
		UserID:              userID,
		NotificationsPerDay: req.NotificationsPerDay,
		Timezone:            req.Timezone,
		Windows:             windows,
		IsActive:            isActive,
	}

	output, err := h.useCase.Reschedule(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("schedule rescheduled successfully",
		"user_id", userID,
		"scheduled_count", len(output.ScheduledTimes),
	)
	c.JSON(http.StatusOK, FromDTO(output))
}

func (h *ScheduleHandler) SetActive(c *gin.Context) {
	userID := c.Param("user_id")

	slog.Info("handling set active request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", userID,
	)

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("request validation failed",
			"error", err,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Field:   "",
		})

		return
	}

	input := app.SetActiveInput{
		UserID:   userID,
		IsActive: *req.IsActive,
	}

	output, err := h.useCase.SetActive(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("schedule active flag updated successfully",
		"user_id", userID,
		"is_active", output.IsActive,
	)
	c.JSON(http.StatusOK, FromDTO(output))
}

func (h *ScheduleHandler) GetScheduleInfo(c *gin.Context) {
	userID := c.Param("user_id")

	input := app.GetScheduleInfoInput{
		UserID: userID,
	}

	output, err := h.useCase.GetScheduleInfo(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromDTO(output))
}

func (h *ScheduleHandler) RemoveSchedule(c *gin.Context) {
	userID := c.Param("user_id")

	slog.Info("handling remove schedule request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", userID,
	)

	input := app.RemoveScheduleInput{
		UserID: userID,
	}

	if err := h.useCase.Remove(c.Request.Context(), input); err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("schedule removed successfully",
		"user_id", userID,
	)
	c.Status(http.StatusNoContent)
}

func (h *ScheduleHandler) handleError(c *gin.Context, err error) {
	var validationErr *app.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})

		return
	}

	if errors.Is(err, app.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "resource not found",
			Field:   "",
		})

		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
		Field:   "",
	})
}

func (h *ScheduleHandler) RegisterRoutes(router *gin.RouterGroup) {
	schedules := router.Group("/schedules")
	{
		schedules.PUT("/:user_id", h.Reschedule)
		schedules.GET("/:user_id", h.GetScheduleInfo)
		schedules.PATCH("/:user_id/active", h.SetActive)
		schedules.DELETE("/:user_id", h.RemoveSchedule)
	}
}
