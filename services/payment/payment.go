package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"medibook/config"
	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
)

var (
	// ErrAppointmentNotFound is returned when the fee target is unknown.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrNotPayable is returned for cancelled appointments and repeated
	// payments.
	ErrNotPayable = errors.New("appointment cannot be paid")
	// ErrPaymentIncomplete is returned when the gateway has not confirmed
	// the payment yet.
	ErrPaymentIncomplete = errors.New("payment not completed")
)

// PaymentService collects appointment fees. Payment may land before or
// after the visit; it only flips the paid flag, never the lifecycle state.
type PaymentService interface {
	// CollectFee opens a payment intent for the appointment fee and
	// returns the invoice carrying the client secret.
	CollectFee(ctx context.Context, appointmentID, patientID string) (*models.Invoice, error)
	// ConfirmPayment verifies the gateway outcome and marks the
	// appointment paid.
	ConfirmPayment(ctx context.Context, appointmentID, paymentID string) error
}

// StripePaymentService implements PaymentService on Stripe PaymentIntents.
type StripePaymentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Logger       *zap.Logger
}

func (s *StripePaymentService) CollectFee(ctx context.Context, appointmentID, patientID string) (*models.Invoice, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	if appt.PatientID != patientID {
		return nil, ErrAppointmentNotFound
	}
	if appt.Status == models.StatusCancelled || appt.Paid {
		return nil, ErrNotPayable
	}

	currency := config.AppConfig.Currency
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(appt.Amount * 100))),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("appointmentId", appt.ID)
	params.AddMetadata("patientId", appt.PatientID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	s.Logger.Info("payment intent created",
		zap.String("appointmentId", appt.ID),
		zap.String("paymentId", intent.ID))

	return &models.Invoice{
		InvoiceID:     uuid.New().String(),
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		Amount:        appt.Amount,
		Currency:      currency,
		PaymentID:     intent.ID,
		ClientSecret:  intent.ClientSecret,
		Status:        string(intent.Status),
		CreatedAt:     time.Now(),
	}, nil
}

func (s *StripePaymentService) ConfirmPayment(ctx context.Context, appointmentID, paymentID string) error {
	intent, err := paymentintent.Get(paymentID, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch payment intent: %w", err)
	}
	if intent.Metadata["appointmentId"] != appointmentID {
		return ErrAppointmentNotFound
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return ErrPaymentIncomplete
	}

	if err := s.Appointments.MarkPaid(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("failed to record payment: %w", err)
	}
	s.Logger.Info("appointment paid",
		zap.String("appointmentId", appointmentID),
		zap.String("paymentId", paymentID))
	return nil
}
