package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	"github.com/clinichq/clinic-manager/pkg/helpers"
)

func newAuthService(accounts *MockAccountRepository) *AuthService {
	jwt := helpers.NewJWTManager("test-access-secret", "test-refresh-secret", time.Hour, 24*time.Hour)
	return NewAuthService(accounts, jwt, nil, logrus.New(), nil, "", nil)
}

func storedAccount(t *testing.T, status entity.Status) *entity.Account {
	t.Helper()
	hash, err := helpers.HashPassword("correct-horse")
	require.NoError(t, err)
	return &entity.Account{
		ID:       targetID,
		Name:     "Budi Hartono",
		Email:    "budi@clinic.local",
		Password: hash,
		Role:     entity.RolePatient,
		Status:   status,
	}
}

func TestRegisterDefaultsToPatientRole(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	accounts.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(nil)

	svc := newAuthService(accounts)
	a, err := svc.Register(context.Background(), "Budi", "Budi@Clinic.Local", "secret123", "")

	require.NoError(t, err)
	assert.Equal(t, entity.RolePatient, a.Role)
	assert.Equal(t, "budi@clinic.local", a.Email)
	assert.Empty(t, a.Password)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	accounts := new(MockAccountRepository)

	svc := newAuthService(accounts)
	_, err := svc.Register(context.Background(), "Eve", "eve@clinic.local", "secret123", entity.RoleAdmin)

	assert.ErrorIs(t, err, ErrInvalidRole)
	accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("GetByEmail", mock.Anything, mock.Anything).Return(storedAccount(t, entity.StatusActive), nil)

	svc := newAuthService(accounts)
	_, err := svc.Register(context.Background(), "Budi", "budi@clinic.local", "secret123", entity.RolePatient)

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("GetByEmail", mock.Anything, "budi@clinic.local").Return(storedAccount(t, entity.StatusActive), nil)

	svc := newAuthService(accounts)
	_, _, err := svc.Login(context.Background(), "budi@clinic.local", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBlockedAccount(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("GetByEmail", mock.Anything, "budi@clinic.local").Return(storedAccount(t, entity.StatusBlocked), nil)

	svc := newAuthService(accounts)
	_, _, err := svc.Login(context.Background(), "budi@clinic.local", "correct-horse")

	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLoginSuspendedAccountIsDistinct(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("GetByEmail", mock.Anything, "budi@clinic.local").Return(storedAccount(t, entity.StatusSuspended), nil)

	svc := newAuthService(accounts)
	_, _, err := svc.Login(context.Background(), "budi@clinic.local", "correct-horse")

	assert.ErrorIs(t, err, ErrAccountSuspended)
}

func TestLoginAndRefreshRoundTrip(t *testing.T) {
	a := storedAccount(t, entity.StatusActive)
	accounts := new(MockAccountRepository)
	accounts.On("GetByEmail", mock.Anything, a.Email).Return(a, nil)
	accounts.On("GetByID", mock.Anything, a.ID).Return(a, nil)

	svc := newAuthService(accounts)
	res, pair, err := svc.Login(context.Background(), a.Email, "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, a.ID, res.AccountID)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	next, accountID, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, a.ID, accountID)
	assert.NotEmpty(t, next.AccessToken)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := newAuthService(new(MockAccountRepository))
	_, _, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRejectsDisabledAccount(t *testing.T) {
	a := storedAccount(t, entity.StatusActive)
	accounts := new(MockAccountRepository)
	accounts.On("GetByEmail", mock.Anything, a.Email).Return(a, nil)
	accounts.On("GetByID", mock.Anything, a.ID).Return(a, nil)

	svc := newAuthService(accounts)
	_, pair, err := svc.Login(context.Background(), a.Email, "correct-horse")
	require.NoError(t, err)

	a.Status = entity.StatusBlocked
	_, _, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
