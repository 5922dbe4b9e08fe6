package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/middleware"
	"medibook/services/patient"
	"medibook/utils"
)

// PatientHandler serves patient profile management.
type PatientHandler struct {
	Service patient.PatientService
}

func NewPatientHandler(svc patient.PatientService) *PatientHandler {
	return &PatientHandler{Service: svc}
}

// GetProfileHandler returns the authenticated patient's profile.
func (h *PatientHandler) GetProfileHandler(c *gin.Context) {
	pat, err := h.Service.GetByID(c.GetString(middleware.ContextActorID))
	if errors.Is(err, patient.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "patient not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": pat})
}

// UpdateProfileHandler patches the authenticated patient's name and phone.
func (h *PatientHandler) UpdateProfileHandler(c *gin.Context) {
	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Service.UpdateProfile(c.GetString(middleware.ContextActorID), input.Name, input.Phone); err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "patient not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// UpdateFCMTokenHandler stores the authenticated patient's push token.
func (h *PatientHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var input struct {
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Service.UpdateFCMToken(c.GetString(middleware.ContextActorID), input.FCMToken); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update push token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
