package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookingRepo "studioflow/database/repository/booking"
	"studioflow/models"
	"studioflow/services/scheduling"
	"studioflow/utils"
)

// BookingHandler exposes the scheduling engine over HTTP.
type BookingHandler struct {
	Engine scheduling.SchedulingService
}

func NewBookingHandler(engine scheduling.SchedulingService) *BookingHandler {
	return &BookingHandler{Engine: engine}
}

// respondEngineError maps engine errors onto HTTP statuses.
func respondEngineError(c *gin.Context, err error) {
	var vErr *scheduling.ValidationError
	var cErr *scheduling.ConflictError
	var tErr *scheduling.InvalidTransitionError

	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", vErr.Error())
	case errors.As(err, &cErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":          "window unavailable",
			"reason":         cErr.Reason,
			"conflicting_id": cErr.ConflictingID,
			"kind":           cErr.Kind,
			"window":         cErr.Window,
		})
	case errors.As(err, &tErr):
		utils.JSONError(c, http.StatusConflict, "invalid status transition", tErr.Error())
	case errors.Is(err, bookingRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// CreateBooking creates a single booking after a check-and-reserve pass.
func (hb *BookingHandler) CreateBooking(c *gin.Context) {
	var input scheduling.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := hb.Engine.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// CreateSeries expands a recurrence spec and creates the whole series,
// reporting skipped occurrences alongside the created bookings.
func (hb *BookingHandler) CreateSeries(c *gin.Context) {
	var input struct {
		scheduling.CreateBookingInput
		Recurrence models.RecurrenceSpec `json:"recurrence"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := hb.Engine.CreateRecurringSeries(c.Request.Context(), input.CreateBookingInput, input.Recurrence)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// TransitionStatus moves a booking through its lifecycle.
func (hb *BookingHandler) TransitionStatus(c *gin.Context) {
	bookingID := c.Param("id")
	var input struct {
		OrgID  string               `json:"org_id"`
		Status models.BookingStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := hb.Engine.TransitionStatus(c.Request.Context(), input.OrgID, bookingID, input.Status)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// ScheduleReminders replaces the pending reminder set for a booking.
func (hb *BookingHandler) ScheduleReminders(c *gin.Context) {
	bookingID := c.Param("id")
	var input struct {
		OrgID     string                `json:"org_id"`
		Reminders []models.ReminderSpec `json:"reminders"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	reminders, err := hb.Engine.ScheduleReminders(c.Request.Context(), input.OrgID, bookingID, input.Reminders)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}
