package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles repositories that share one database handle.
type Repositories struct {
	Accounts AccountRepository
	Products ProductRepository
	Cart     CartRepository
	Orders   OrderRepository
}

// NewRepositories builds every repository on top of db.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Accounts: NewAccountRepository(db),
		Products: NewProductRepository(db),
		Cart:     NewCartRepository(db),
		Orders:   NewOrderRepository(db),
	}
}

// Transactor runs work against repositories bound to a single database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a Transactor backed by GORM.
func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

// WithTransaction executes fn within a database transaction. Returning an error rolls back.
func (t *gormTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepositories(tx))
	})
}
