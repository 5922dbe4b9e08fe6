package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appointmentRepo "medibook/database/repository/appointment"
	patientRepo "medibook/database/repository/patient"
	providerRepo "medibook/database/repository/provider"
	"medibook/middleware"
	"medibook/services/scheduling"
	"medibook/utils"
)

// DashboardHandler serves the settlement views: per-provider earnings and
// the platform-wide admin dashboard.
type DashboardHandler struct {
	Engine       scheduling.SchedulingEngine
	Appointments appointmentRepo.AppointmentRepository
	Providers    providerRepo.ProviderRepository
	Patients     patientRepo.PatientRepository
}

func NewDashboardHandler(engine scheduling.SchedulingEngine, appointments appointmentRepo.AppointmentRepository,
	providers providerRepo.ProviderRepository, patients patientRepo.PatientRepository) *DashboardHandler {
	return &DashboardHandler{Engine: engine, Appointments: appointments, Providers: providers, Patients: patients}
}

// ProviderDashboardHandler returns the authenticated provider's earnings
// summary and latest appointments.
func (h *DashboardHandler) ProviderDashboardHandler(c *gin.Context) {
	providerID := c.GetString(middleware.ContextActorID)
	dash, err := h.Engine.ProviderSettlement(c.Request.Context(), providerID, 0)
	if errors.Is(err, scheduling.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "provider not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build dashboard", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": dash})
}

// AdminDashboardHandler returns the platform-wide settlement together
// with headline counts.
func (h *DashboardHandler) AdminDashboardHandler(c *gin.Context) {
	dash, err := h.Engine.PlatformSettlement(c.Request.Context(), 0)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build dashboard", err.Error())
		return
	}

	providers, err := h.Providers.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to count providers", err.Error())
		return
	}
	patientCount, err := h.Patients.Count()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to count patients", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dashboard":     dash,
		"providerCount": len(providers),
		"patientCount":  patientCount,
	})
}

// AllAppointmentsHandler lists every appointment on the platform, latest
// first.
func (h *DashboardHandler) AllAppointmentsHandler(c *gin.Context) {
	appts, err := h.Appointments.All(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
