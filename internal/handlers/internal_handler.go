package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finanzas/internal/errors"
	"finanzas/internal/reminders"
)

// ReminderRunner delivers the day's debt reminders.
type ReminderRunner interface {
	Run(ctx context.Context) (reminders.Result, error)
}

// InternalHandler serves endpoints for operators and schedulers.
type InternalHandler struct {
	runner ReminderRunner
}

// NewInternalHandler creates a new InternalHandler.
func NewInternalHandler(runner ReminderRunner) *InternalHandler {
	return &InternalHandler{runner: runner}
}

// RunReminders triggers a reminder run outside the schedule
// @Summary     Run reminders
// @Description Compute and deliver today's debt reminders for every user
// @Tags        internal
// @Produce     json
// @Param       X-API-Key header string true "Internal API key"
// @Success     200 {object} reminders.Result "Run summary"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /internal/reminders/run [post]
func (h *InternalHandler) RunReminders(c *gin.Context) {
	res, err := h.runner.Run(c.Request.Context())
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.JSON(http.StatusOK, res)
}
