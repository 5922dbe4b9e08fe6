package patientRepo

import (
	"errors"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no patient matches the lookup.
var ErrNotFound = errors.New("patient not found")

// PatientRepository defines patient account data access.
type PatientRepository interface {
	GetByID(id string) (*models.Patient, error)
	GetByEmail(email string) (*models.Patient, error)
	GetByTokenHash(tokenHash string) (*models.Patient, error)
	Create(patient *models.Patient) error
	UpdateWithDocument(id string, updateDoc bson.M) error
	Count() (int64, error)
}
