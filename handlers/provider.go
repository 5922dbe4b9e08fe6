package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/availability"
	"medibook/services/provider"
	"medibook/services/storage"
	"medibook/utils"
)

// ProviderHandler serves provider onboarding, discovery and profile
// management.
type ProviderHandler struct {
	Service      provider.ProviderService
	Availability availability.AvailabilityService
	Storage      storage.StorageService
}

func NewProviderHandler(svc provider.ProviderService, avail availability.AvailabilityService, store storage.StorageService) *ProviderHandler {
	return &ProviderHandler{Service: svc, Availability: avail, Storage: store}
}

// RegisterProviderHandler creates a provider account. Accepts multipart
// form data with a "provider" JSON part and an optional "image" file.
func (h *ProviderHandler) RegisterProviderHandler(c *gin.Context) {
	var input provider.RegistrationInput
	if err := json.Unmarshal([]byte(c.PostForm("provider")), &input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if file, err := c.FormFile("image"); err == nil {
		localPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, localPath); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to receive image", err.Error())
			return
		}
		defer os.Remove(localPath)

		url, err := h.Storage.UploadImage(c.Request.Context(), localPath)
		if err != nil {
			// Registration still goes through without a profile image.
			utils.GetLogger().Warn("provider image upload failed", zap.Error(err))
		} else {
			input.ImageURL = url
		}
	}

	prov, token, err := h.Service.Register(input)
	switch {
	case errors.Is(err, provider.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "email already registered", "")
		return
	case errors.Is(err, provider.ErrValidation),
		errors.Is(err, availability.ErrInvalidAvailabilityWindow):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "registration failed", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"provider": prov, "token": token})
}

// ListProvidersHandler returns the public discovery listing.
func (h *ProviderHandler) ListProvidersHandler(c *gin.Context) {
	listing, err := h.Service.ListPublic(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list providers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": listing})
}

// GetProviderHandler returns one provider's public profile.
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	prov, err := h.Service.GetByID(c.Param("id"))
	if errors.Is(err, provider.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "provider not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": prov.PublicView()})
}

// UpdateProfileHandler patches the authenticated provider's mutable
// profile fields.
func (h *ProviderHandler) UpdateProfileHandler(c *gin.Context) {
	providerID := c.GetString(middleware.ContextActorID)
	var update provider.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Service.UpdateProfile(providerID, update)
	switch {
	case errors.Is(err, provider.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "provider not found", "")
		return
	case errors.Is(err, provider.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// SetAvailableHandler flips the accepting-bookings flag for the
// authenticated provider.
func (h *ProviderHandler) SetAvailableHandler(c *gin.Context) {
	providerID := c.GetString(middleware.ContextActorID)
	var input struct {
		Available bool `json:"available"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.SetAvailable(providerID, input.Available); err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "provider not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": input.Available})
}

// SetAvailabilityHandler replaces the authenticated provider's weekly
// availability map.
func (h *ProviderHandler) SetAvailabilityHandler(c *gin.Context) {
	providerID := c.GetString(middleware.ContextActorID)
	var weekly models.WeeklyAvailability
	if err := c.ShouldBindJSON(&weekly); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Availability.SetAvailability(providerID, weekly)
	switch {
	case errors.Is(err, availability.ErrInvalidAvailabilityWindow):
		utils.JSONError(c, http.StatusBadRequest, "invalid availability window", err.Error())
		return
	case errors.Is(err, availability.ErrProviderNotFound):
		utils.JSONError(c, http.StatusNotFound, "provider not found", "")
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "failed to store availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": weekly})
}

// GetAvailabilityHandler returns a provider's weekly availability map.
func (h *ProviderHandler) GetAvailabilityHandler(c *gin.Context) {
	weekly, err := h.Availability.GetAvailability(c.Param("id"))
	if errors.Is(err, availability.ErrProviderNotFound) {
		utils.JSONError(c, http.StatusNotFound, "provider not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": weekly})
}

// UpdateFCMTokenHandler stores the authenticated provider's push token.
func (h *ProviderHandler) UpdateFCMTokenHandler(c *gin.Context) {
	providerID := c.GetString(middleware.ContextActorID)
	var input struct {
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Service.UpdateFCMToken(providerID, input.FCMToken); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update push token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
