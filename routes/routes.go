package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/utils"
)

// RegisterPatientRoutes registers patient account endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.POST("/register", hb.Auth.RegisterPatientHandler)
		api.POST("/login", hb.Auth.LoginPatientHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthPatientMiddleware(hb.PatientRepo))
		protected.GET("/me", hb.Patient.GetProfileHandler)
		protected.PATCH("/me", hb.Patient.UpdateProfileHandler)
		protected.PUT("/me/fcm-token", hb.Patient.UpdateFCMTokenHandler)
		protected.GET("/me/appointments", hb.Booking.PatientAppointmentsHandler)
	}
}

// RegisterProviderRoutes registers provider discovery and account
// endpoints. Slot listings are public so patients can browse before
// authenticating.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.POST("/login", hb.Auth.LoginProviderHandler)
		api.GET("", hb.Provider.ListProvidersHandler)
		api.GET("/:id", hb.Provider.GetProviderHandler)
		api.GET("/:id/availability", hb.Provider.GetAvailabilityHandler)
		api.GET("/:id/slots", hb.Booking.ListSlotsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		protected.PATCH("/me", hb.Provider.UpdateProfileHandler)
		protected.PUT("/me/available", hb.Provider.SetAvailableHandler)
		protected.PUT("/me/availability", hb.Provider.SetAvailabilityHandler)
		protected.PUT("/me/fcm-token", hb.Provider.UpdateFCMTokenHandler)
		protected.GET("/me/appointments", hb.Booking.ProviderAppointmentsHandler)
		protected.GET("/me/dashboard", hb.Dashboard.ProviderDashboardHandler)
		protected.POST("/me/appointments/:id/cancel", hb.Booking.CancelHandler)
		protected.POST("/me/appointments/:id/complete", hb.Booking.CompleteHandler)
	}
}

// RegisterBookingRoutes registers the reservation and payment endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthPatientMiddleware(hb.PatientRepo))
		api.POST("", hb.Booking.BookHandler)
		api.POST("/pay", hb.Payment.CollectFeeHandler)
		api.POST("/pay/confirm", hb.Payment.ConfirmPaymentHandler)
	}
}

// RegisterAdminRoutes registers platform administration endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", hb.Auth.LoginAdminHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware())
		protected.POST("/providers", hb.Provider.RegisterProviderHandler)
		protected.GET("/appointments", hb.Dashboard.AllAppointmentsHandler)
		protected.GET("/dashboard", hb.Dashboard.AdminDashboardHandler)
		protected.POST("/appointments/:id/cancel", hb.Booking.CancelHandler)
		protected.POST("/appointments/:id/complete", hb.Booking.CompleteHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// periodic dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and the CORS
// policy.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPatientRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
