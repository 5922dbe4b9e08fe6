package providerRepo

import (
	"errors"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no provider matches the lookup.
var ErrNotFound = errors.New("provider not found")

// ProviderRepository defines provider data access, including the weekly
// availability map. Availability writes are whole-map replacements; last
// write wins.
type ProviderRepository interface {
	GetByID(id string) (*models.Provider, error)
	GetByEmail(email string) (*models.Provider, error)
	GetByTokenHash(tokenHash string) (*models.Provider, error)
	GetAll() ([]models.Provider, error)
	Create(provider *models.Provider) error
	// UpdateWithDocument patches a provider document with the given update.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// SetAvailability replaces the whole weekly availability map.
	SetAvailability(id string, availability models.WeeklyAvailability) error
}
