package scheduling

import (
	"context"
	"fmt"

	"medibook/models"
)

// DefaultCommissionRate is the platform share applied when the caller does
// not name one.
const DefaultCommissionRate = 0.10

// CalculateSettlement is a pure aggregation over a set of appointments. An
// appointment contributes when it is completed or paid; cancelled
// appointments are always excluded, even if the fee was collected (the
// refund is handled out of band). Commission is rate x gross, net is the
// remainder.
func CalculateSettlement(appts []models.Appointment, rate float64) models.Settlement {
	var s models.Settlement
	patients := make(map[string]bool)

	for _, a := range appts {
		if a.Status == models.StatusCancelled {
			continue
		}
		if a.Status != models.StatusCompleted && !a.Paid {
			continue
		}
		s.GrossRevenue += a.Amount
		s.AppointmentCount++
		patients[a.PatientID] = true
	}
	s.Commission = round2(rate * s.GrossRevenue)
	s.NetEarnings = round2(s.GrossRevenue - s.Commission)
	s.GrossRevenue = round2(s.GrossRevenue)
	s.DistinctPatientCount = len(patients)
	return s
}

// effectiveRate resolves a caller-supplied rate against the engine's
// configured rate, then the platform default.
func (se *DefaultSchedulingEngine) effectiveRate(rate float64) float64 {
	if rate > 0 {
		return rate
	}
	if se.CommissionRate > 0 {
		return se.CommissionRate
	}
	return DefaultCommissionRate
}

// ProviderSettlement aggregates one provider's appointments. The latest
// view is the repository's creation-time ordering, most recent first.
func (se *DefaultSchedulingEngine) ProviderSettlement(ctx context.Context, providerID string, rate float64) (*models.Dashboard, error) {
	rate = se.effectiveRate(rate)
	appts, err := se.Appointments.ByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider appointments: %w", err)
	}
	return &models.Dashboard{
		Settlement:         CalculateSettlement(appts, rate),
		LatestAppointments: appts,
	}, nil
}

// PlatformSettlement aggregates every appointment on the platform.
func (se *DefaultSchedulingEngine) PlatformSettlement(ctx context.Context, rate float64) (*models.Dashboard, error) {
	rate = se.effectiveRate(rate)
	appts, err := se.Appointments.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	return &models.Dashboard{
		Settlement:         CalculateSettlement(appts, rate),
		LatestAppointments: appts,
	}, nil
}
