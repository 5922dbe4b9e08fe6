package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment is one booked slot between a patient and a provider.
// Records are never deleted: cancellation flips Status and releases the
// slot hold, completion flips Status and keeps the hold.
type Appointment struct {
	ID                 string            `bson:"id" json:"id"`
	ProviderID         string            `bson:"providerId" json:"providerId"`
	PatientID          string            `bson:"patientId" json:"patientId"`
	SlotDate           string            `bson:"slotDate" json:"slotDate"` // "2006-01-02"
	SlotTime           string            `bson:"slotTime" json:"slotTime"` // "15:04"
	Amount             float64           `bson:"amount" json:"amount"`
	CommissionAmount   float64           `bson:"commissionAmount" json:"commissionAmount"`
	Status             AppointmentStatus `bson:"status" json:"status"`
	Paid               bool              `bson:"paid" json:"paid"`
	CancellationReason string            `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	// SlotHeld mirrors Status: true while the (provider, date, time) triple
	// is occupied (booked or completed). It backs the unique slot index and
	// must never diverge from Status.
	SlotHeld  bool      `bson:"slotHeld" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// HoldsSlot reports whether an appointment in the given status occupies
// its slot.
func HoldsSlot(status AppointmentStatus) bool {
	return status != StatusCancelled
}

// Actor is the authenticated identity performing a state-machine call.
// Identity and role come from the auth layer; the engine trusts them.
type Actor struct {
	ID   string
	Role string
}

const (
	RolePatient  = "patient"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)
