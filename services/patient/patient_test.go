package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/utils"
)

type memPatients struct {
	byID map[string]*models.Patient
}

func newMemPatients() *memPatients {
	return &memPatients{byID: make(map[string]*models.Patient)}
}

func (m *memPatients) GetByID(id string) (*models.Patient, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, patientRepo.ErrNotFound
}

func (m *memPatients) GetByEmail(email string) (*models.Patient, error) {
	for _, p := range m.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, patientRepo.ErrNotFound
}

func (m *memPatients) GetByTokenHash(tokenHash string) (*models.Patient, error) {
	for _, p := range m.byID {
		if p.TokenHash == tokenHash {
			return p, nil
		}
	}
	return nil, patientRepo.ErrNotFound
}

func (m *memPatients) Create(p *models.Patient) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memPatients) UpdateWithDocument(id string, updateDoc bson.M) error {
	p, ok := m.byID[id]
	if !ok {
		return patientRepo.ErrNotFound
	}
	if set, ok := updateDoc["$set"].(bson.M); ok {
		if v, ok := set["tokenHash"].(string); ok {
			p.TokenHash = v
		}
		if v, ok := set["name"].(string); ok {
			p.Name = v
		}
		if v, ok := set["phone"].(string); ok {
			p.Phone = v
		}
		if v, ok := set["fcmToken"].(string); ok {
			p.FCMToken = v
		}
	}
	return nil
}

func (m *memPatients) Count() (int64, error) {
	return int64(len(m.byID)), nil
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMemPatients()
	svc := &DefaultPatientService{Repo: repo}

	pat, token, err := svc.Register(RegistrationInput{
		Name:     "Amina",
		Email:    "Amina@Example.com",
		Password: "long enough",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "amina@example.com", pat.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(pat.PasswordHash), []byte("long enough")))

	subject, role, err := utils.TokenClaims(token)
	require.NoError(t, err)
	assert.Equal(t, pat.ID, subject)
	assert.Equal(t, models.RolePatient, role)

	logged, loginToken, err := svc.Login("amina@example.com", "long enough")
	require.NoError(t, err)
	assert.Equal(t, pat.ID, logged.ID)
	assert.Equal(t, utils.HashToken(loginToken), repo.byID[pat.ID].TokenHash)
}

func TestRegisterRejectsDuplicateAndShortPassword(t *testing.T) {
	svc := &DefaultPatientService{Repo: newMemPatients()}

	_, _, err := svc.Register(RegistrationInput{Name: "Amina", Email: "a@b.com", Password: "long enough"})
	require.NoError(t, err)

	_, _, err = svc.Register(RegistrationInput{Name: "Other", Email: "a@b.com", Password: "long enough"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = svc.Register(RegistrationInput{Name: "Short", Email: "s@b.com", Password: "tiny"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := &DefaultPatientService{Repo: newMemPatients()}

	_, _, err := svc.Register(RegistrationInput{Name: "Amina", Email: "a@b.com", Password: "long enough"})
	require.NoError(t, err)

	_, _, err = svc.Login("a@b.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("nobody@b.com", "long enough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileAndPushToken(t *testing.T) {
	repo := newMemPatients()
	svc := &DefaultPatientService{Repo: repo}

	pat, _, err := svc.Register(RegistrationInput{Name: "Amina", Email: "a@b.com", Password: "long enough"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProfile(pat.ID, "Amina W.", "+254700000000"))
	assert.Equal(t, "Amina W.", repo.byID[pat.ID].Name)
	assert.Equal(t, "+254700000000", repo.byID[pat.ID].Phone)

	require.NoError(t, svc.UpdateFCMToken(pat.ID, "fcm-token-1"))
	assert.Equal(t, "fcm-token-1", repo.byID[pat.ID].FCMToken)

	assert.ErrorIs(t, svc.UpdateProfile("ghost", "X", ""), ErrNotFound)
}
