package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents the status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ShippingInfo is the delivery address captured at checkout.
type ShippingInfo struct {
	Name    string `json:"name" gorm:"size:255;not null"`
	Email   string `json:"email" gorm:"size:255;not null"`
	Address string `json:"address" gorm:"size:255;not null"`
	City    string `json:"city" gorm:"size:100;not null"`
	State   string `json:"state" gorm:"size:100;not null"`
	Zip     string `json:"zip" gorm:"size:20;not null"`
}

// Order is an immutable record of a checkout. Items are copied from the cart and the
// catalog at placement time and never reference cart lines.
type Order struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	AccountID     uuid.UUID       `json:"account_id" gorm:"type:char(36);not null;index"`
	Shipping      ShippingInfo    `json:"shipping" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod string          `json:"payment_method" gorm:"size:50;not null"`
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(20,2);not null"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index:idx_orders_status_placed,priority:1"`
	PlacedAt      time.Time       `json:"placed_at" gorm:"not null;index;index:idx_orders_status_placed,priority:2,sort:desc"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// BeforeCreate sets UUID before creating the record.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a frozen copy of one cart line.
type OrderItem struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	OrderID     uuid.UUID       `json:"order_id" gorm:"type:char(36);not null;index"`
	ProductID   uuid.UUID       `json:"product_id" gorm:"type:char(36);not null"`
	ProductName string          `json:"product_name" gorm:"size:255;not null"`
	ImageRef    string          `json:"image" gorm:"size:255"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(20,2);not null"`
	LineTotal   decimal.Decimal `json:"line_total" gorm:"type:decimal(20,2);not null"`
}

// BeforeCreate sets UUID before creating the record.
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// SnapshotItem copies a priced cart item into an order line.
func SnapshotItem(item CartItem) OrderItem {
	return OrderItem{
		ProductID:   item.Product.ID,
		ProductName: item.Product.Name,
		ImageRef:    item.Product.ImageRef,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		LineTotal:   item.LineTotal,
	}
}
