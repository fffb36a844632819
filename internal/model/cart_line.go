package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartLine is one product entry in an account's cart.
// The composite unique index backs the atomic add-to-cart upsert.
type CartLine struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	AccountID uuid.UUID `json:"account_id" gorm:"type:char(36);not null;uniqueIndex:idx_cart_account_product,priority:1"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:char(36);not null;uniqueIndex:idx_cart_account_product,priority:2"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (l *CartLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// CartItem is a cart line joined with its current catalog product.
type CartItem struct {
	Line      CartLine        `json:"line"`
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"total"`
}

// NewCartItem prices a line at the product's current price.
func NewCartItem(line CartLine, product Product) CartItem {
	return CartItem{
		Line:      line,
		Product:   product,
		Quantity:  line.Quantity,
		UnitPrice: product.Price,
		LineTotal: product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
	}
}

// CartTotal sums the line totals of the given items.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return total
}
