package models

// Settlement is the aggregate earnings picture over a set of appointments.
// An appointment contributes when it is completed or paid; cancelled
// appointments never contribute, paid or not.
type Settlement struct {
	GrossRevenue         float64 `json:"grossRevenue"`
	Commission           float64 `json:"commission"`
	NetEarnings          float64 `json:"netEarnings"`
	AppointmentCount     int     `json:"appointmentCount"`
	DistinctPatientCount int     `json:"distinctPatientCount"`
}

// Dashboard bundles a provider's settlement with the latest-first
// appointment view.
type Dashboard struct {
	Settlement         Settlement    `json:"settlement"`
	LatestAppointments []Appointment `json:"latestAppointments"`
}
