package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/model"
)

// CartRepository defines cart ledger persistence operations.
type CartRepository interface {
	Increment(ctx context.Context, accountID, productID uuid.UUID, quantity int) error
	Adjust(ctx context.Context, accountID, productID uuid.UUID, delta int) error
	Delete(ctx context.Context, accountID, productID uuid.UUID) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.CartLine, error)
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Increment adds quantity to the (account, product) line, creating it if absent.
// It is a single upsert against the composite unique index, so concurrent adds never lose an update.
func (r *cartRepository) Increment(ctx context.Context, accountID, productID uuid.UUID, quantity int) error {
	line := &model.CartLine{
		AccountID: accountID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", quantity),
			"updated_at": time.Now(),
		}),
	}).Create(line).Error
}

// Adjust shifts the quantity of an existing line by delta and drops the line once it reaches zero.
// A missing line is left alone.
func (r *cartRepository) Adjust(ctx context.Context, accountID, productID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.CartLine{}).
			Where("account_id = ? AND product_id = ?", accountID, productID).
			Update("quantity", gorm.Expr("quantity + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Where("account_id = ? AND product_id = ? AND quantity <= 0", accountID, productID).
			Delete(&model.CartLine{}).Error
	})
}

// Delete removes a line if present.
func (r *cartRepository) Delete(ctx context.Context, accountID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Delete(&model.CartLine{}).Error
}

// ListByAccount lists the lines of an account in insertion order.
func (r *cartRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).
		Order("created_at ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// DeleteByAccount clears the whole cart of an account.
func (r *cartRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&model.CartLine{})
	return res.RowsAffected, res.Error
}
