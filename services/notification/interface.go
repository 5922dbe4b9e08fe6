package notification

import (
	"context"
	"time"

	"medibook/models"
)

// NotificationService queues outbound notices. Everything here is
// best-effort: the booking engine commits its state first and never rolls
// back on a delivery problem.
type NotificationService interface {
	// SendCancellationNotice queues a cancellation push for the patient.
	SendCancellationNotice(ctx context.Context, notice models.CancellationNotice) error
	// ScheduleReminder queues an upcoming-appointment reminder to fire at
	// the given time.
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}
