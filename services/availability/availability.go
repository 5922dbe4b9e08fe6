// Package availability owns each provider's weekly availability windows:
// whole-map reads and writes plus the business-policy validation applied on
// every write.
package availability

import (
	"errors"
	"fmt"

	providerRepo "medibook/database/repository/provider"
	"medibook/models"
)

var (
	// ErrInvalidAvailabilityWindow is returned when a weekday window is
	// malformed, inverted, or outside the operating policy hours.
	ErrInvalidAvailabilityWindow = errors.New("invalid availability window")

	// ErrProviderNotFound is returned for an unknown provider.
	ErrProviderNotFound = errors.New("provider not found")
)

// Operating policy: provider windows must fall inside 09:00-17:00, both
// edges inclusive.
const (
	policyOpenMinute  = 9 * 60
	policyCloseMinute = 17 * 60
)

var weekdayNames = map[string]bool{
	"Sunday": true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true,
}

// AvailabilityService manages weekly availability maps.
type AvailabilityService interface {
	// SetAvailability validates the map and replaces the provider's weekly
	// windows wholesale. Last write wins; there is no merge.
	SetAvailability(providerID string, weekly models.WeeklyAvailability) error
	// GetAvailability returns the provider's current weekly map.
	GetAvailability(providerID string) (models.WeeklyAvailability, error)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Repo providerRepo.ProviderRepository
}

// Validate checks every present weekday window: known weekday key,
// well-formed times, from strictly before to, and both inside the operating
// policy hours. The returned error names the offending weekday.
func Validate(weekly models.WeeklyAvailability) error {
	for day, win := range weekly {
		if !weekdayNames[day] {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidAvailabilityWindow, day)
		}
		from, err := models.ParseClock(win.From)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidAvailabilityWindow, day, err)
		}
		to, err := models.ParseClock(win.To)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidAvailabilityWindow, day, err)
		}
		if from >= to {
			return fmt.Errorf("%w: %s: window start %s must be before end %s",
				ErrInvalidAvailabilityWindow, day, win.From, win.To)
		}
		if from < policyOpenMinute || to > policyCloseMinute {
			return fmt.Errorf("%w: %s: window %s-%s outside operating hours %s-%s",
				ErrInvalidAvailabilityWindow, day, win.From, win.To,
				models.FormatClock(policyOpenMinute), models.FormatClock(policyCloseMinute))
		}
	}
	return nil
}

func (s *DefaultAvailabilityService) SetAvailability(providerID string, weekly models.WeeklyAvailability) error {
	if err := Validate(weekly); err != nil {
		return err
	}
	err := s.Repo.SetAvailability(providerID, weekly)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return ErrProviderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to store availability: %w", err)
	}
	return nil
}

func (s *DefaultAvailabilityService) GetAvailability(providerID string) (models.WeeklyAvailability, error) {
	prov, err := s.Repo.GetByID(providerID)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}
	if prov.Availability == nil {
		return models.WeeklyAvailability{}, nil
	}
	return prov.Availability, nil
}
