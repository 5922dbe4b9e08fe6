package scheduling

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
	providerRepo "medibook/database/repository/provider"
	"medibook/models"
	"medibook/utils"
)

// ListSlots reads a snapshot of the provider's availability and the booked
// index, then runs the pure slot walk over it. A provider that has toggled
// itself off lists every day as unavailable.
func (se *DefaultSchedulingEngine) ListSlots(ctx context.Context, providerID string, horizonDays int) ([]models.DaySlots, error) {
	prov, err := se.Providers.GetByID(providerID)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}

	opts := se.Slots
	if horizonDays > 0 {
		opts.HorizonDays = horizonDays
	}
	opts = opts.withDefaults()

	availability := prov.Availability
	if !prov.Available {
		availability = nil
	}

	first := opts.Now.AddDate(0, 0, opts.StartOffsetDays).Format("2006-01-02")
	last := opts.Now.AddDate(0, 0, opts.StartOffsetDays+opts.HorizonDays-1).Format("2006-01-02")
	booked, err := se.Appointments.HeldTimes(ctx, providerID, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}

	return GenerateSlots(availability, booked, opts), nil
}

// Book validates the requested slot against the provider's window and then
// hands the reservation to the repository's atomic insert. There is no
// application-level check-then-write: the uniqueness guard lives in the
// slot index, so two racing calls cannot both succeed.
func (se *DefaultSchedulingEngine) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	day, err := time.Parse("2006-01-02", req.SlotDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot date %q", ErrValidation, req.SlotDate)
	}
	slotMin, err := models.ParseClock(req.SlotTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	prov, err := se.Providers.GetByID(req.ProviderID)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}

	opts := se.Slots.withDefaults()
	today := opts.Now.Format("2006-01-02")
	if req.SlotDate <= today {
		return nil, fmt.Errorf("%w: same-day and past dates are not bookable", ErrSlotUnavailable)
	}
	win, ok := prov.Availability.WindowFor(day.Weekday())
	if !ok || !prov.Available {
		return nil, ErrSlotUnavailable
	}
	from, errFrom := models.ParseClock(win.From)
	to, errTo := models.ParseClock(win.To)
	if errFrom != nil || errTo != nil || slotMin < from || slotMin >= to {
		return nil, ErrSlotUnavailable
	}

	appt := &models.Appointment{
		ID:               uuid.New().String(),
		ProviderID:       req.ProviderID,
		PatientID:        req.PatientID,
		SlotDate:         req.SlotDate,
		SlotTime:         req.SlotTime,
		Amount:           req.Amount,
		CommissionAmount: round2(se.CommissionRate * req.Amount),
		Status:           models.StatusBooked,
		SlotHeld:         true,
		CreatedAt:        time.Now(),
	}

	if err := se.Appointments.Insert(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, fmt.Errorf("reservation failed: %w", err)
	}

	se.scheduleReminder(appt, prov.Name, day, slotMin)
	return appt, nil
}

// scheduleReminder queues a push for the day before the visit. Purely
// best-effort: a queue outage must not fail the booking.
func (se *DefaultSchedulingEngine) scheduleReminder(appt *models.Appointment, providerName string, day time.Time, slotMin int) {
	if se.Notifier == nil {
		return
	}
	fireAt := day.Add(time.Duration(slotMin)*time.Minute - 24*time.Hour)
	if fireAt.Before(time.Now()) {
		return
	}
	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		ProviderName:  providerName,
		SlotDate:      appt.SlotDate,
		SlotTime:      appt.SlotTime,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := se.Notifier.ScheduleReminder(ctx, payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to queue appointment reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
