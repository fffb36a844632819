package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/model"
)

// ProductRepository defines catalog read operations.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	ListOldest(ctx context.Context, limit int) ([]model.Product, error)
	ListNewest(ctx context.Context, limit int) ([]model.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// FindByID finds a product by ID.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs returns the products that exist among ids, in no particular order.
func (r *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []model.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListOldest lists products in creation order.
func (r *productRepository) ListOldest(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order("created_at ASC").Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListNewest lists the most recently added products first.
func (r *productRepository) ListNewest(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
