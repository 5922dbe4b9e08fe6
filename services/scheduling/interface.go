package scheduling

import (
	"context"

	appointmentRepo "medibook/database/repository/appointment"
	providerRepo "medibook/database/repository/provider"
	"medibook/models"
	"medibook/services/notification"
)

// SchedulingEngine is the appointment booking core: slot listing, the
// atomic reservation protocol, the appointment state machine and
// settlement aggregation.
type SchedulingEngine interface {
	// ListSlots computes the open slots for a provider over the horizon,
	// one entry per day, reflecting bookings committed before the read.
	ListSlots(ctx context.Context, providerID string, horizonDays int) ([]models.DaySlots, error)
	// Book atomically reserves a slot and creates the appointment. Under
	// concurrent attempts for the same (provider, date, time) exactly one
	// caller succeeds; the rest get ErrSlotAlreadyBooked.
	Book(ctx context.Context, req BookingRequest) (*models.Appointment, error)
	// Cancel moves booked->cancelled, frees the slot for re-booking and
	// queues a best-effort patient notice.
	Cancel(ctx context.Context, appointmentID string, actor models.Actor, reason string) error
	// Complete moves booked->completed; the historical slot stays occupied.
	Complete(ctx context.Context, appointmentID string, actor models.Actor) error
	// ProviderSettlement aggregates one provider's earnings at the given
	// commission rate, with the latest-first appointment view.
	ProviderSettlement(ctx context.Context, providerID string, rate float64) (*models.Dashboard, error)
	// PlatformSettlement aggregates across all providers.
	PlatformSettlement(ctx context.Context, rate float64) (*models.Dashboard, error)
}

// BookingRequest is one reservation attempt.
type BookingRequest struct {
	ProviderID string
	PatientID  string
	SlotDate   string // "2006-01-02"
	SlotTime   string // "15:04"
	Amount     float64
}

// DefaultSchedulingEngine is the production implementation.
type DefaultSchedulingEngine struct {
	Providers    providerRepo.ProviderRepository
	Appointments appointmentRepo.AppointmentRepository
	Notifier     notification.NotificationService

	// CommissionRate is the platform share stamped on new appointments,
	// e.g. 0.10.
	CommissionRate float64
	// Slots tunes the slot walk; zero values use the platform defaults.
	Slots SlotOptions
}
