package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/middleware"
	"medibook/services/payment"
	"medibook/utils"
)

// PaymentHandler serves appointment fee collection.
type PaymentHandler struct {
	Service payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// CollectFeeHandler opens a payment intent for one of the authenticated
// patient's appointments.
func (h *PaymentHandler) CollectFeeHandler(c *gin.Context) {
	var input struct {
		AppointmentID string `json:"appointmentId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	invoice, err := h.Service.CollectFee(c.Request.Context(), input.AppointmentID, c.GetString(middleware.ContextActorID))
	switch {
	case errors.Is(err, payment.ErrAppointmentNotFound):
		utils.JSONError(c, http.StatusNotFound, "appointment not found", "")
		return
	case errors.Is(err, payment.ErrNotPayable):
		utils.JSONError(c, http.StatusConflict, "appointment cannot be paid", "")
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "failed to start payment", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// ConfirmPaymentHandler verifies the gateway outcome and flips the paid
// flag.
func (h *PaymentHandler) ConfirmPaymentHandler(c *gin.Context) {
	var input struct {
		AppointmentID string `json:"appointmentId"`
		PaymentID     string `json:"paymentId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Service.ConfirmPayment(c.Request.Context(), input.AppointmentID, input.PaymentID)
	switch {
	case errors.Is(err, payment.ErrAppointmentNotFound):
		utils.JSONError(c, http.StatusNotFound, "appointment not found", "")
		return
	case errors.Is(err, payment.ErrPaymentIncomplete):
		utils.JSONError(c, http.StatusPaymentRequired, "payment not completed", "")
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "failed to confirm payment", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "paid"})
}
