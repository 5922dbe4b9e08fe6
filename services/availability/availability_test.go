package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	providerRepo "medibook/database/repository/provider"
	"medibook/models"
)

type memProviders struct {
	byID map[string]*models.Provider
}

func (m *memProviders) GetByID(id string) (*models.Provider, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, providerRepo.ErrNotFound
}

func (m *memProviders) GetByEmail(string) (*models.Provider, error) {
	return nil, providerRepo.ErrNotFound
}

func (m *memProviders) GetByTokenHash(string) (*models.Provider, error) {
	return nil, providerRepo.ErrNotFound
}

func (m *memProviders) GetAll() ([]models.Provider, error) { return nil, nil }

func (m *memProviders) Create(p *models.Provider) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memProviders) UpdateWithDocument(string, bson.M) error { return nil }

func (m *memProviders) SetAvailability(id string, weekly models.WeeklyAvailability) error {
	p, ok := m.byID[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.Availability = weekly
	return nil
}

func TestValidateAcceptsPolicyWindows(t *testing.T) {
	weekly := models.WeeklyAvailability{
		"Monday":   {From: "09:00", To: "17:00"},
		"Tuesday":  {From: "10:30", To: "12:00"},
		"Saturday": {From: "09:00", To: "09:30"},
	}
	assert.NoError(t, Validate(weekly))
}

func TestValidateRejectsOutsidePolicyHours(t *testing.T) {
	cases := map[string]models.WeeklyAvailability{
		"before opening": {"Monday": {From: "07:00", To: "08:00"}},
		"after closing":  {"Friday": {From: "16:00", To: "18:00"}},
	}
	for name, weekly := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate(weekly)
			assert.ErrorIs(t, err, ErrInvalidAvailabilityWindow)
		})
	}
}

func TestValidateRejectsMalformedWindows(t *testing.T) {
	cases := map[string]models.WeeklyAvailability{
		"inverted":        {"Monday": {From: "12:00", To: "10:00"}},
		"zero width":      {"Monday": {From: "10:00", To: "10:00"}},
		"not a clock":     {"Monday": {From: "noonish", To: "15:00"}},
		"unknown weekday": {"Funday": {From: "09:00", To: "10:00"}},
	}
	for name, weekly := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate(weekly)
			assert.ErrorIs(t, err, ErrInvalidAvailabilityWindow)
		})
	}
}

func TestValidateNamesOffendingWeekday(t *testing.T) {
	err := Validate(models.WeeklyAvailability{
		"Monday":    {From: "09:00", To: "17:00"},
		"Wednesday": {From: "07:00", To: "08:00"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Wednesday")
}

func TestSetAvailabilityReplacesWholeMap(t *testing.T) {
	repo := &memProviders{byID: map[string]*models.Provider{
		"prov-1": {ID: "prov-1", Availability: models.WeeklyAvailability{
			"Monday": {From: "09:00", To: "17:00"},
			"Friday": {From: "09:00", To: "12:00"},
		}},
	}}
	svc := &DefaultAvailabilityService{Repo: repo}

	// The write replaces, never merges: Friday disappears.
	err := svc.SetAvailability("prov-1", models.WeeklyAvailability{
		"Tuesday": {From: "10:00", To: "14:00"},
	})
	require.NoError(t, err)

	got, err := svc.GetAvailability("prov-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, models.TimeWindow{From: "10:00", To: "14:00"}, got["Tuesday"])
}

func TestSetAvailabilityRejectsInvalidWindowWithoutWriting(t *testing.T) {
	original := models.WeeklyAvailability{"Monday": {From: "09:00", To: "17:00"}}
	repo := &memProviders{byID: map[string]*models.Provider{
		"prov-1": {ID: "prov-1", Availability: original},
	}}
	svc := &DefaultAvailabilityService{Repo: repo}

	err := svc.SetAvailability("prov-1", models.WeeklyAvailability{
		"Monday": {From: "07:00", To: "08:00"},
	})
	assert.ErrorIs(t, err, ErrInvalidAvailabilityWindow)

	got, err := svc.GetAvailability("prov-1")
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestSetAvailabilityUnknownProvider(t *testing.T) {
	svc := &DefaultAvailabilityService{Repo: &memProviders{byID: map[string]*models.Provider{}}}
	err := svc.SetAvailability("ghost", models.WeeklyAvailability{
		"Monday": {From: "09:00", To: "17:00"},
	})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestGetAvailabilityEmptyMap(t *testing.T) {
	svc := &DefaultAvailabilityService{Repo: &memProviders{byID: map[string]*models.Provider{
		"prov-1": {ID: "prov-1"},
	}}}
	got, err := svc.GetAvailability("prov-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
