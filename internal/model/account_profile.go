package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AccountProfile is the extended profile created alongside every account.
// Name and location columns carry a FULLTEXT index for profile search.
type AccountProfile struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	AccountID uuid.UUID `json:"account_id" gorm:"type:char(36);not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	FirstName string    `json:"first_name" gorm:"size:100;index:idx_profile_search,class:FULLTEXT"`
	LastName  string    `json:"last_name" gorm:"size:100;index:idx_profile_search,class:FULLTEXT"`
	Phone     string    `json:"phone" gorm:"size:32"`
	Address   string    `json:"address" gorm:"size:255"`
	City      string    `json:"city" gorm:"size:100;index:idx_profile_search,class:FULLTEXT"`
	State     string    `json:"state" gorm:"size:100;index:idx_profile_search,class:FULLTEXT"`
	ZipCode   string    `json:"zip_code" gorm:"size:20"`

	ShippingAddresses  datatypes.JSON `json:"shipping_addresses"`
	BillingAddresses   datatypes.JSON `json:"billing_addresses"`
	Wishlist           datatypes.JSON `json:"wishlist"`
	ViewedProducts     datatypes.JSON `json:"viewed_products"`
	FavoriteCategories datatypes.JSON `json:"favorite_categories"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Account Account `json:"-" gorm:"foreignKey:AccountID"`
}

// NewAccountProfile returns an empty profile bound to the given account.
func NewAccountProfile(account *Account) *AccountProfile {
	empty := datatypes.JSON("[]")
	return &AccountProfile{
		AccountID:          account.ID,
		Email:              account.Email,
		ShippingAddresses:  empty,
		BillingAddresses:   empty,
		Wishlist:           empty,
		ViewedProducts:     empty,
		FavoriteCategories: empty,
	}
}

// BeforeCreate sets UUID before creating the record.
func (p *AccountProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
