package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/utils"
)

// PushSender resolves a patient's device token and delivers FCM pushes.
// It runs inside the notification worker.
type PushSender struct {
	Patients patientRepo.PatientRepository
}

func (p *PushSender) SendCancellationPush(ctx context.Context, notice models.CancellationNotice) error {
	body := fmt.Sprintf("Your appointment with %s on %s at %s has been cancelled. Reason: %s",
		notice.ProviderName, notice.SlotDate, notice.SlotTime, notice.Reason)
	return p.send(ctx, notice.PatientID, "Appointment cancelled", body, map[string]string{
		"type":     "cancellation",
		"slotDate": notice.SlotDate,
		"slotTime": notice.SlotTime,
	})
}

func (p *PushSender) SendReminderPush(ctx context.Context, payload models.ReminderPayload) error {
	body := fmt.Sprintf("Reminder: your appointment with %s is on %s at %s.",
		payload.ProviderName, payload.SlotDate, payload.SlotTime)
	return p.send(ctx, payload.PatientID, "Upcoming appointment", body, map[string]string{
		"type":          "reminder",
		"appointmentId": payload.AppointmentID,
	})
}

func (p *PushSender) send(ctx context.Context, patientID, title, body string, data map[string]string) error {
	patient, err := p.Patients.GetByID(patientID)
	if err != nil {
		return fmt.Errorf("could not resolve patient %s: %w", patientID, err)
	}
	if patient.FCMToken == "" {
		// No registered device; nothing to deliver.
		return nil
	}

	msg := &messaging.Message{
		Token: patient.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
