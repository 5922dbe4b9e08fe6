// Package patient manages patient accounts.
package patient

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/utils"
)

var (
	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound is returned for an unknown patient.
	ErrNotFound = errors.New("patient not found")
	// ErrValidation is returned when a registration payload is incomplete.
	ErrValidation = errors.New("invalid patient data")
)

// RegistrationInput carries everything needed to create a patient account.
type RegistrationInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// PatientService manages patient accounts.
type PatientService interface {
	Register(input RegistrationInput) (*models.Patient, string, error)
	Login(email, password string) (*models.Patient, string, error)
	GetByID(id string) (*models.Patient, error)
	// UpdateProfile patches name and phone.
	UpdateProfile(id, name, phone string) error
	// UpdateFCMToken stores the push-delivery token for the patient.
	UpdateFCMToken(id, token string) error
}

// DefaultPatientService is the production implementation.
type DefaultPatientService struct {
	Repo patientRepo.PatientRepository
}

func (s *DefaultPatientService) Register(input RegistrationInput) (*models.Patient, string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" || len(input.Password) < 8 {
		return nil, "", fmt.Errorf("%w: name, email and a password of at least 8 characters are required", ErrValidation)
	}

	if existing, err := s.Repo.GetByEmail(input.Email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	} else if err != nil && !errors.Is(err, patientRepo.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	pat := &models.Patient{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	token, err := utils.GenerateToken(pat.ID, models.RolePatient, utils.TokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	pat.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(pat); err != nil {
		return nil, "", fmt.Errorf("failed to create patient: %w", err)
	}
	utils.GetLogger().Info("patient registered", zap.String("patientId", pat.ID))
	return pat, token, nil
}

func (s *DefaultPatientService) Login(email, password string) (*models.Patient, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	pat, err := s.Repo.GetByEmail(email)
	if errors.Is(err, patientRepo.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load patient: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(pat.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(pat.ID, models.RolePatient, utils.TokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateWithDocument(pat.ID, bson.M{"$set": bson.M{
		"tokenHash": tokenHash,
		"updatedAt": time.Now(),
	}}); err != nil {
		return nil, "", fmt.Errorf("failed to store session: %w", err)
	}
	pat.TokenHash = tokenHash
	return pat, token, nil
}

func (s *DefaultPatientService) GetByID(id string) (*models.Patient, error) {
	pat, err := s.Repo.GetByID(id)
	if errors.Is(err, patientRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	return pat, nil
}

func (s *DefaultPatientService) UpdateProfile(id, name, phone string) error {
	set := bson.M{"updatedAt": time.Now()}
	if name != "" {
		set["name"] = name
	}
	if phone != "" {
		set["phone"] = phone
	}
	err := s.Repo.UpdateWithDocument(id, bson.M{"$set": set})
	if errors.Is(err, patientRepo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (s *DefaultPatientService) UpdateFCMToken(id, token string) error {
	err := s.Repo.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"fcmToken":  token,
		"updatedAt": time.Now(),
	}})
	if errors.Is(err, patientRepo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}
	return nil
}
