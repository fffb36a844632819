package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/model"
)

// OrderRepository defines order persistence operations.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByIDForAccount(ctx context.Context, id, accountID uuid.UUID) (*model.Order, error)
	FindLatestByAccount(ctx context.Context, accountID uuid.UUID) (*model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order together with its items.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByIDForAccount finds an order owned by the given account.
func (r *orderRepository) FindByIDForAccount(ctx context.Context, id, accountID uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND account_id = ?", id, accountID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindLatestByAccount finds the most recently placed order of an account.
func (r *orderRepository) FindLatestByAccount(ctx context.Context, accountID uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("account_id = ?", accountID).
		Order("placed_at DESC").
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
