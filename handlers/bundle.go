package handlers

import (
	patientRepo "medibook/database/repository/patient"
	providerRepo "medibook/database/repository/provider"
)

// HandlerBundle groups all endpoint handlers plus the repositories the
// auth middlewares verify tokens against.
type HandlerBundle struct {
	ProviderRepo providerRepo.ProviderRepository
	PatientRepo  patientRepo.PatientRepository

	Auth      *AuthHandler
	Provider  *ProviderHandler
	Patient   *PatientHandler
	Booking   *BookingHandler
	Dashboard *DashboardHandler
	Payment   *PaymentHandler
}
