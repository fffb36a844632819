package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/model"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account, profile *model.AccountProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByUsername(ctx context.Context, username string) (*model.Account, error)
	FindProfile(ctx context.Context, accountID uuid.UUID) (*model.AccountProfile, error)
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	RecordOrder(ctx context.Context, id uuid.UUID, total decimal.Decimal) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts the account and its extended profile in one transaction.
// Unique-index violations come back as gorm.ErrDuplicatedKey.
func (r *accountRepository) Create(ctx context.Context, account *model.Account, profile *model.AccountProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		profile.AccountID = account.ID
		return tx.Create(profile).Error
	})
}

// FindByID finds an account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByIDForUpdate finds an account by ID with a row-level lock. Only meaningful inside a transaction.
func (r *accountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByEmail finds an account by email.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByUsername finds an account by username.
func (r *accountRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindProfile finds the extended profile of an account.
func (r *accountRepository) FindProfile(ctx context.Context, accountID uuid.UUID) (*model.AccountProfile, error) {
	var profile model.AccountProfile
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// RecordLogin stamps a successful login.
func (r *accountRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at": at,
			"is_active":     true,
		}).Error
}

// RecordOrder bumps the order counters of an account.
func (r *accountRepository) RecordOrder(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stats_orders_count": gorm.Expr("stats_orders_count + ?", 1),
			"stats_total_spent":  gorm.Expr("stats_total_spent + ?", total),
		}).Error
}
