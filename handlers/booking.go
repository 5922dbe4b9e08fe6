package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/middleware"
	"medibook/services/scheduling"
	"medibook/utils"
)

// BookingHandler serves the slot calendar, reservation and the
// appointment state machine.
type BookingHandler struct {
	Engine       scheduling.SchedulingEngine
	Appointments appointmentRepo.AppointmentRepository
}

func NewBookingHandler(engine scheduling.SchedulingEngine, appointments appointmentRepo.AppointmentRepository) *BookingHandler {
	return &BookingHandler{Engine: engine, Appointments: appointments}
}

// ListSlotsHandler returns the open slots for a provider, one entry per
// day over the booking horizon. An optional "days" query narrows the
// horizon.
func (h *BookingHandler) ListSlotsHandler(c *gin.Context) {
	horizon := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.JSONError(c, http.StatusBadRequest, "invalid days parameter", "")
			return
		}
		horizon = parsed
	}

	days, err := h.Engine.ListSlots(c.Request.Context(), c.Param("id"), horizon)
	if errors.Is(err, scheduling.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "provider not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list slots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// BookHandler reserves a slot for the authenticated patient.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	var input struct {
		ProviderID string  `json:"providerId"`
		SlotDate   string  `json:"slotDate"`
		SlotTime   string  `json:"slotTime"`
		Amount     float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Engine.Book(c.Request.Context(), scheduling.BookingRequest{
		ProviderID: input.ProviderID,
		PatientID:  c.GetString(middleware.ContextActorID),
		SlotDate:   input.SlotDate,
		SlotTime:   input.SlotTime,
		Amount:     input.Amount,
	})
	switch {
	case errors.Is(err, scheduling.ErrSlotAlreadyBooked):
		utils.JSONError(c, http.StatusConflict, "slot already booked", "")
		return
	case errors.Is(err, scheduling.ErrSlotUnavailable):
		utils.JSONError(c, http.StatusUnprocessableEntity, "slot outside provider availability", "")
		return
	case errors.Is(err, scheduling.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "provider not found", "")
		return
	case errors.Is(err, scheduling.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "booking failed", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// CancelHandler moves an appointment booked->cancelled and frees its slot.
// A reason is mandatory.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Engine.Cancel(c.Request.Context(), c.Param("id"), middleware.Actor(c), input.Reason)
	switch {
	case errors.Is(err, scheduling.ErrReasonRequired):
		utils.JSONError(c, http.StatusBadRequest, "cancellation reason required", "")
		return
	case errors.Is(err, scheduling.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "appointment not found", "")
		return
	case errors.Is(err, scheduling.ErrUnauthorized):
		utils.JSONError(c, http.StatusForbidden, "not allowed to modify this appointment", "")
		return
	case errors.Is(err, scheduling.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "appointment is not in booked state", "")
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "cancellation failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// CompleteHandler moves an appointment booked->completed.
func (h *BookingHandler) CompleteHandler(c *gin.Context) {
	err := h.Engine.Complete(c.Request.Context(), c.Param("id"), middleware.Actor(c))
	switch {
	case errors.Is(err, scheduling.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "appointment not found", "")
		return
	case errors.Is(err, scheduling.ErrUnauthorized):
		utils.JSONError(c, http.StatusForbidden, "not allowed to modify this appointment", "")
		return
	case errors.Is(err, scheduling.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "appointment is not in booked state", "")
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "completion failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

// PatientAppointmentsHandler lists the authenticated patient's
// appointments, latest first.
func (h *BookingHandler) PatientAppointmentsHandler(c *gin.Context) {
	appts, err := h.Appointments.ByPatient(c.Request.Context(), c.GetString(middleware.ContextActorID))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ProviderAppointmentsHandler lists the authenticated provider's
// appointments, latest first.
func (h *BookingHandler) ProviderAppointmentsHandler(c *gin.Context) {
	appts, err := h.Appointments.ByProvider(c.Request.Context(), c.GetString(middleware.ContextActorID))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
