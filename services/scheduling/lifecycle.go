package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
	"medibook/utils"
)

// authorize allows administrators and the owning provider; everyone else
// is rejected.
func authorize(actor models.Actor, appt *models.Appointment) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleProvider:
		if actor.ID == appt.ProviderID {
			return nil
		}
	}
	return ErrUnauthorized
}

// Cancel applies booked->cancelled. The status flip and the slot release
// are one conditional update, so a racing Complete and Cancel cannot both
// win. The patient notice is queued after the transition has committed and
// is never allowed to undo it.
func (se *DefaultSchedulingEngine) Cancel(ctx context.Context, appointmentID string, actor models.Actor, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}

	appt, err := se.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load appointment: %w", err)
	}
	if err := authorize(actor, appt); err != nil {
		return err
	}
	if appt.Status != models.StatusBooked {
		return ErrInvalidTransition
	}

	if err := se.Appointments.MarkCancelled(ctx, appointmentID, reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrNotBooked) {
			return ErrInvalidTransition
		}
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	se.notifyCancellation(appt, reason)
	return nil
}

// Complete applies booked->completed. The slot stays held: a finished
// visit's time must not become re-bookable.
func (se *DefaultSchedulingEngine) Complete(ctx context.Context, appointmentID string, actor models.Actor) error {
	appt, err := se.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load appointment: %w", err)
	}
	if err := authorize(actor, appt); err != nil {
		return err
	}
	if appt.Status != models.StatusBooked {
		return ErrInvalidTransition
	}

	if err := se.Appointments.MarkCompleted(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrNotBooked) {
			return ErrInvalidTransition
		}
		return fmt.Errorf("failed to complete appointment: %w", err)
	}
	return nil
}

// notifyCancellation queues the patient notice on a detached context.
// Failures are logged and swallowed; the cancellation has already
// committed.
func (se *DefaultSchedulingEngine) notifyCancellation(appt *models.Appointment, reason string) {
	if se.Notifier == nil {
		return
	}
	providerName := appt.ProviderID
	if prov, err := se.Providers.GetByID(appt.ProviderID); err == nil {
		providerName = prov.Name
	}
	notice := models.CancellationNotice{
		PatientID:    appt.PatientID,
		ProviderName: providerName,
		SlotDate:     appt.SlotDate,
		SlotTime:     appt.SlotTime,
		Reason:       reason,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := se.Notifier.SendCancellationNotice(ctx, notice); err != nil {
		utils.GetLogger().Warn("failed to queue cancellation notice",
			zap.String("appointmentId", appt.ID),
			zap.String("patientId", appt.PatientID),
			zap.Error(err))
	}
}
