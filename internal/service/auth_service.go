package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const bcryptCost = 10

// SessionManager binds an authenticated account to a browser session.
type SessionManager interface {
	Establish(ctx context.Context, account *model.Account, remember bool) (string, *auth.Session, error)
	Terminate(ctx context.Context, token string) error
}

// AuthService handles registration and the login/logout lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.Account, error)
	Authenticate(ctx context.Context, email, password string) (*model.Account, error)
	Login(ctx context.Context, email, password string, remember bool) (token string, session *auth.Session, err error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	accountRepo repository.AccountRepository
	sessions    SessionManager
	validator   *RegistrationValidator
	now         func() time.Time
	// dummyHash is compared when the email is unknown.
	dummyHash []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(accountRepo repository.AccountRepository, sessions SessionManager) AuthService {
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("storefront-dummy-password"), bcryptCost)
	if err != nil {
		panic(fmt.Sprintf("hash dummy password: %v", err))
	}
	return &authService{
		accountRepo: accountRepo,
		sessions:    sessions,
		validator:   NewRegistrationValidator(),
		now:         time.Now,
		dummyHash:   dummyHash,
	}
}

// Register validates the form and creates the account with its extended profile.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.Account, error) {
	in = s.validator.Normalize(in)
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	// Pre-checks give the specific message; the unique indexes catch races.
	if err := s.checkAvailable(ctx, in.Email, in.Username); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	account := &model.Account{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleUser,
		JoinedAt:     now,
		LastLoginAt:  now,
		IsActive:     true,
		Profile:      model.Profile{ProfilePic: model.DefaultProfilePic},
		Settings:     model.DefaultSettings(),
	}

	if err := s.accountRepo.Create(ctx, account, model.NewAccountProfile(account)); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateCause(ctx, in.Email)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

func (s *authService) checkAvailable(ctx context.Context, email, username string) error {
	if _, err := s.accountRepo.FindByEmail(ctx, email); err == nil {
		return errors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	if _, err := s.accountRepo.FindByUsername(ctx, username); err == nil {
		return errors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check username: %w", err)
	}
	return nil
}

// duplicateCause tells which unique column lost a registration race.
func (s *authService) duplicateCause(ctx context.Context, email string) error {
	if _, err := s.accountRepo.FindByEmail(ctx, email); err == nil {
		return errors.ErrEmailTaken
	}
	return errors.ErrUsernameTaken
}

// Authenticate verifies the credentials and stamps the login on success.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.Account, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find account: %w", err)
		}
		// Equalize timing with the known-email path.
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.accountRepo.RecordLogin(ctx, account.ID, now); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	account.LastLoginAt = now
	account.IsActive = true

	return account, nil
}

// Login authenticates and establishes a session, returning its cookie token.
func (s *authService) Login(ctx context.Context, email, password string, remember bool) (string, *auth.Session, error) {
	account, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, session, err := s.sessions.Establish(ctx, account, remember)
	if err != nil {
		return "", nil, fmt.Errorf("establish session: %w", err)
	}
	return token, session, nil
}

// Logout terminates the session behind token.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Terminate(ctx, token)
}
