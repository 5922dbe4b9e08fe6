package appointmentRepo

import (
	"context"
	"errors"

	"medibook/models"
)

var (
	// ErrSlotTaken is returned by Insert when another slot-holding
	// appointment already occupies the (provider, date, time) triple.
	ErrSlotTaken = errors.New("slot already held")

	// ErrNotFound is returned when no appointment matches the given ID.
	ErrNotFound = errors.New("appointment not found")

	// ErrNotBooked is returned by the conditional status updates when the
	// appointment exists but is no longer in the booked state.
	ErrNotBooked = errors.New("appointment is not in booked state")
)

// AppointmentRepository owns the appointment set and the derived
// booked-slot index. All slot-uniqueness enforcement lives behind Insert;
// callers never check-then-write.
type AppointmentRepository interface {
	// Insert atomically creates a slot-holding appointment. Exactly one of
	// any set of concurrent inserts for the same triple succeeds; the rest
	// get ErrSlotTaken.
	Insert(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)

	// HeldTimes rebuilds the booked-slot index for one provider over
	// [fromDate, toDate], dates inclusive, from the slot-holding
	// appointments.
	HeldTimes(ctx context.Context, providerID, fromDate, toDate string) (models.BookedSlotIndex, error)

	// MarkCancelled transitions booked->cancelled, records the reason and
	// releases the slot hold in a single conditional update.
	MarkCancelled(ctx context.Context, id, reason string) error
	// MarkCompleted transitions booked->completed, keeping the slot held.
	MarkCompleted(ctx context.Context, id string) error
	// MarkPaid flips the payment flag. Valid before or after completion.
	MarkPaid(ctx context.Context, id string) error

	ByProvider(ctx context.Context, providerID string) ([]models.Appointment, error)
	ByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	All(ctx context.Context) ([]models.Appointment, error)
}
