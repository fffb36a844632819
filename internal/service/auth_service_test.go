package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/model"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account, profile *model.AccountProfile) error {
	args := m.Called(ctx, account, profile)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindProfile(ctx context.Context, accountID uuid.UUID) (*model.AccountProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccountProfile), args.Error(1)
}

func (m *MockAccountRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockAccountRepository) RecordOrder(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	args := m.Called(ctx, id, total)
	return args.Error(0)
}

// MockSessionManager is a mock implementation of SessionManager.
type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Establish(ctx context.Context, account *model.Account, remember bool) (string, *auth.Session, error) {
	args := m.Called(ctx, account, remember)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*auth.Session), args.Error(2)
}

func (m *MockSessionManager) Terminate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func validRegistration() RegisterInput {
	return RegisterInput{Username: "alice", Email: "a@x.io", Password: "password1", ConfirmPassword: "password1"}
}

func TestAuthService_Register(t *testing.T) {
	db := newMemDB()
	service := NewAuthService(db.repos().Accounts, new(MockSessionManager))

	account, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.NotEqual(t, "password1", account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("password1")))
	assert.Equal(t, model.RoleUser, account.Role)
	assert.True(t, account.IsActive)
	assert.Equal(t, model.DefaultProfilePic, account.Profile.ProfilePic)
	assert.Equal(t, model.DefaultSettings(), account.Settings)
	assert.Zero(t, account.Stats.OrdersCount)
	assert.True(t, account.Stats.TotalSpent.IsZero())

	profile, err := db.repos().Accounts.FindProfile(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", profile.Email)
	assert.JSONEq(t, "[]", string(profile.Wishlist))
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	tests := []struct {
		name    string
		second  RegisterInput
		wantErr error
	}{
		{
			name:    "email taken",
			second:  RegisterInput{Username: "bob", Email: "a@x.io", Password: "password1", ConfirmPassword: "password1"},
			wantErr: errors.ErrEmailTaken,
		},
		{
			name:    "username taken",
			second:  RegisterInput{Username: "alice", Email: "b@x.io", Password: "password1", ConfirmPassword: "password1"},
			wantErr: errors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newMemDB()
			service := NewAuthService(db.repos().Accounts, new(MockSessionManager))

			_, err := service.Register(context.Background(), validRegistration())
			require.NoError(t, err)

			account, err := service.Register(context.Background(), tt.second)
			assert.Nil(t, account)
			assert.Equal(t, tt.wantErr, err)
			assert.ErrorIs(t, err, errors.ErrDuplicateAccount)
		})
	}
}

func TestAuthService_Register_ValidationStopsBeforeLookup(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	service := NewAuthService(mockRepo, new(MockSessionManager))

	in := validRegistration()
	in.ConfirmPassword = "different"
	_, err := service.Register(context.Background(), in)

	var verr *errors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Passwords do not match", verr.Message)
	mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Register_UniqueIndexBackstop(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	mockRepo.On("FindByEmail", mock.Anything, "a@x.io").Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Account"), mock.AnythingOfType("*model.AccountProfile")).
		Return(gorm.ErrDuplicatedKey)
	// the racing winner is visible by the time the loser asks again
	mockRepo.On("FindByEmail", mock.Anything, "a@x.io").Return(nil, gorm.ErrRecordNotFound).Once()

	service := NewAuthService(mockRepo, new(MockSessionManager))
	_, err := service.Register(context.Background(), validRegistration())

	assert.Equal(t, errors.ErrUsernameTaken, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_Race(t *testing.T) {
	db := newMemDB()
	service := NewAuthService(db.repos().Accounts, new(MockSessionManager))

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = service.Register(context.Background(), validRegistration())
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, errors.ErrDuplicateAccount)
	}
	assert.Equal(t, 1, successes)
}

func seedAccount(t *testing.T, db *memDB, password string, lastLogin time.Time) model.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return db.addAccount(model.Account{
		Username:     "alice",
		Email:        "a@x.io",
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		LastLoginAt:  lastLogin,
	})
}

func TestNewAuthService_PreparesDummyHash(t *testing.T) {
	svc, ok := NewAuthService(new(MockAccountRepository), new(MockSessionManager)).(*authService)
	require.True(t, ok)

	require.NotEmpty(t, svc.dummyHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(svc.dummyHash, []byte("storefront-dummy-password")))
}

func TestAuthService_Authenticate(t *testing.T) {
	lastLogin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"success", "a@x.io", "password1", nil},
		{"wrong password", "a@x.io", "wrong-password", errors.ErrInvalidCredentials},
		{"unknown email", "nobody@x.io", "password1", errors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newMemDB()
			seeded := seedAccount(t, db, "password1", lastLogin)
			service := NewAuthService(db.repos().Accounts, new(MockSessionManager))

			account, err := service.Authenticate(context.Background(), tt.email, tt.password)

			stored := db.account(seeded.ID)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, account)
				assert.True(t, stored.LastLoginAt.Equal(lastLogin))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, seeded.ID, account.ID)
			assert.True(t, stored.LastLoginAt.After(lastLogin))
			assert.True(t, stored.IsActive)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	db := newMemDB()
	seeded := seedAccount(t, db, "password1", time.Time{})

	sessions := new(MockSessionManager)
	session := &auth.Session{ID: "sid", AccountID: seeded.ID, Remember: true}
	sessions.On("Establish", mock.Anything, mock.MatchedBy(func(a *model.Account) bool {
		return a.ID == seeded.ID
	}), true).Return("signed-token", session, nil)

	service := NewAuthService(db.repos().Accounts, sessions)
	token, got, err := service.Login(context.Background(), "a@x.io", "password1", true)

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, session, got)
	sessions.AssertExpectations(t)
}

func TestAuthService_Login_InvalidCredentialsSkipsSession(t *testing.T) {
	db := newMemDB()
	seedAccount(t, db, "password1", time.Time{})
	sessions := new(MockSessionManager)

	service := NewAuthService(db.repos().Accounts, sessions)
	token, session, err := service.Login(context.Background(), "a@x.io", "nope", false)

	assert.Equal(t, errors.ErrInvalidCredentials, err)
	assert.Empty(t, token)
	assert.Nil(t, session)
	sessions.AssertNotCalled(t, "Establish", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Logout(t *testing.T) {
	sessions := new(MockSessionManager)
	sessions.On("Terminate", mock.Anything, "signed-token").Return(nil)

	service := NewAuthService(new(MockAccountRepository), sessions)

	assert.NoError(t, service.Logout(context.Background(), "signed-token"))
	sessions.AssertExpectations(t)
}
