package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/config"
	"medibook/models"
	"medibook/services/patient"
	"medibook/services/provider"
	"medibook/utils"
)

// AuthHandler serves registration and login for all three roles.
type AuthHandler struct {
	Patients  patient.PatientService
	Providers provider.ProviderService
}

func NewAuthHandler(patients patient.PatientService, providers provider.ProviderService) *AuthHandler {
	return &AuthHandler{Patients: patients, Providers: providers}
}

// RegisterPatientHandler creates a patient account and returns the auth
// token.
func (h *AuthHandler) RegisterPatientHandler(c *gin.Context) {
	var input patient.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	pat, token, err := h.Patients.Register(input)
	switch {
	case errors.Is(err, patient.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "email already registered", "")
		return
	case errors.Is(err, patient.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "registration failed", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"patient": pat, "token": token})
}

// LoginPatientHandler verifies patient credentials and issues a token.
func (h *AuthHandler) LoginPatientHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	pat, token, err := h.Patients.Login(input.Email, input.Password)
	if errors.Is(err, patient.ErrInvalidCredentials) {
		utils.JSONError(c, http.StatusUnauthorized, "invalid email or password", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "login failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"patient": pat, "token": token})
}

// LoginProviderHandler verifies provider credentials and issues a token.
func (h *AuthHandler) LoginProviderHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	prov, token, err := h.Providers.Login(input.Email, input.Password)
	if errors.Is(err, provider.ErrInvalidCredentials) {
		utils.JSONError(c, http.StatusUnauthorized, "invalid email or password", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "login failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"provider": prov, "token": token})
}

// LoginAdminHandler checks the configured admin credentials and issues a
// stateless admin token.
func (h *AuthHandler) LoginAdminHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	cfg := config.AppConfig
	if cfg.AdminEmail == "" || input.Email != cfg.AdminEmail || input.Password != cfg.AdminPassword {
		utils.JSONError(c, http.StatusUnauthorized, "invalid email or password", "")
		return
	}

	token, err := utils.GenerateToken("admin", models.RoleAdmin, utils.TokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "login failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
