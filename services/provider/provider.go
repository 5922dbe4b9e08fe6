// Package provider manages provider accounts: registration, login, public
// discovery listing and profile updates.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	providerRepo "medibook/database/repository/provider"
	"medibook/models"
	"medibook/services/availability"
	"medibook/utils"
)

var (
	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound is returned for an unknown provider.
	ErrNotFound = errors.New("provider not found")
	// ErrValidation is returned when a registration or update payload is
	// incomplete.
	ErrValidation = errors.New("invalid provider data")
)

// RegistrationInput carries everything needed to create a provider account.
type RegistrationInput struct {
	Name         string                    `json:"name"`
	Email        string                    `json:"email"`
	Password     string                    `json:"password"`
	Speciality   string                    `json:"speciality"`
	Degree       string                    `json:"degree"`
	Experience   string                    `json:"experience"`
	About        string                    `json:"about"`
	Fees         float64                   `json:"fees"`
	Address      models.Address            `json:"address"`
	ImageURL     string                    `json:"-"`
	Availability models.WeeklyAvailability `json:"availability"`
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Fees    *float64        `json:"fees,omitempty"`
	About   *string         `json:"about,omitempty"`
	Address *models.Address `json:"address,omitempty"`
}

// ProviderService manages provider accounts.
type ProviderService interface {
	// Register creates the account and returns it with a signed auth token.
	Register(input RegistrationInput) (*models.Provider, string, error)
	// Login verifies credentials and issues an auth token.
	Login(email, password string) (*models.Provider, string, error)
	// GetByID returns a single provider.
	GetByID(id string) (*models.Provider, error)
	// ListPublic returns the discovery listing with credentials stripped.
	ListPublic(ctx context.Context) ([]models.Provider, error)
	// UpdateProfile patches the mutable profile fields.
	UpdateProfile(id string, update ProfileUpdate) error
	// SetAvailable flips the accepting-bookings flag. When false the
	// provider's slot calendar reads as fully unavailable.
	SetAvailable(id string, available bool) error
	// UpdateFCMToken stores the push-delivery token for the provider.
	UpdateFCMToken(id, token string) error
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo providerRepo.ProviderRepository
	// Cache backs the discovery listing. Nil disables caching.
	Cache *redis.Client
}

func (s *DefaultProviderService) Register(input RegistrationInput) (*models.Provider, string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" || len(input.Password) < 8 {
		return nil, "", fmt.Errorf("%w: name, email and a password of at least 8 characters are required", ErrValidation)
	}
	if input.Speciality == "" || input.Fees <= 0 {
		return nil, "", fmt.Errorf("%w: speciality and a positive fee are required", ErrValidation)
	}
	if input.Availability != nil {
		if err := availability.Validate(input.Availability); err != nil {
			return nil, "", err
		}
	}

	if existing, err := s.Repo.GetByEmail(input.Email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	} else if err != nil && !errors.Is(err, providerRepo.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	prov := &models.Provider{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Speciality:   input.Speciality,
		Degree:       input.Degree,
		Experience:   input.Experience,
		About:        input.About,
		Fees:         input.Fees,
		Address:      input.Address,
		ImageURL:     input.ImageURL,
		Available:    true,
		Availability: input.Availability,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	token, err := utils.GenerateToken(prov.ID, models.RoleProvider, utils.TokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	prov.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(prov); err != nil {
		return nil, "", fmt.Errorf("failed to create provider: %w", err)
	}
	s.invalidateListing()
	utils.GetLogger().Info("provider registered",
		zap.String("providerId", prov.ID),
		zap.String("speciality", prov.Speciality))
	return prov, token, nil
}

func (s *DefaultProviderService) Login(email, password string) (*models.Provider, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	prov, err := s.Repo.GetByEmail(email)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load provider: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(prov.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(prov.ID, models.RoleProvider, utils.TokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateWithDocument(prov.ID, bson.M{"$set": bson.M{
		"tokenHash": tokenHash,
		"updatedAt": time.Now(),
	}}); err != nil {
		return nil, "", fmt.Errorf("failed to store session: %w", err)
	}
	prov.TokenHash = tokenHash
	return prov, token, nil
}

func (s *DefaultProviderService) GetByID(id string) (*models.Provider, error) {
	prov, err := s.Repo.GetByID(id)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}
	return prov, nil
}

// ListPublic serves the discovery listing from Redis when fresh, falling
// back to Mongo and repopulating the cache on a miss.
func (s *DefaultProviderService) ListPublic(ctx context.Context) ([]models.Provider, error) {
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, utils.ProviderListCacheKey).Result(); err == nil {
			var listing []models.Provider
			if json.Unmarshal([]byte(cached), &listing) == nil {
				return listing, nil
			}
		}
	}

	all, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	listing := make([]models.Provider, 0, len(all))
	for _, p := range all {
		listing = append(listing, p.PublicView())
	}

	if s.Cache != nil {
		if payload, err := json.Marshal(listing); err == nil {
			if err := s.Cache.Set(ctx, utils.ProviderListCacheKey, payload, utils.ProviderListCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache provider listing", zap.Error(err))
			}
		}
	}
	return listing, nil
}

func (s *DefaultProviderService) UpdateProfile(id string, update ProfileUpdate) error {
	set := bson.M{"updatedAt": time.Now()}
	if update.Fees != nil {
		if *update.Fees <= 0 {
			return fmt.Errorf("%w: fee must be positive", ErrValidation)
		}
		set["fees"] = *update.Fees
	}
	if update.About != nil {
		set["about"] = *update.About
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	err := s.Repo.UpdateWithDocument(id, bson.M{"$set": set})
	if errors.Is(err, providerRepo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	s.invalidateListing()
	return nil
}

func (s *DefaultProviderService) SetAvailable(id string, available bool) error {
	err := s.Repo.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"available": available,
		"updatedAt": time.Now(),
	}})
	if errors.Is(err, providerRepo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update availability flag: %w", err)
	}
	s.invalidateListing()
	return nil
}

func (s *DefaultProviderService) UpdateFCMToken(id, token string) error {
	err := s.Repo.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"fcmToken":  token,
		"updatedAt": time.Now(),
	}})
	if errors.Is(err, providerRepo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}
	return nil
}

func (s *DefaultProviderService) invalidateListing() {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Cache.Del(ctx, utils.ProviderListCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate provider listing cache", zap.Error(err))
	}
}
