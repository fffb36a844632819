package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Role is the authorization level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultProfilePic is assigned to every new account.
const DefaultProfilePic = "/static/images/default_profile.png"

// Account represents a registered storefront user.
type Account struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	JoinedAt     time.Time `json:"joined_at" gorm:"not null"`
	LastLoginAt  time.Time `json:"last_login_at" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true;index"`

	Profile  Profile         `json:"profile" gorm:"embedded;embeddedPrefix:profile_"`
	Stats    AccountStats    `json:"stats" gorm:"embedded;embeddedPrefix:stats_"`
	Settings AccountSettings `json:"settings" gorm:"embedded;embeddedPrefix:settings_"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the contact sub-record stored inline with the account.
type Profile struct {
	FirstName  string `json:"first_name" gorm:"size:100"`
	LastName   string `json:"last_name" gorm:"size:100"`
	Phone      string `json:"phone" gorm:"size:32"`
	Address    string `json:"address" gorm:"size:255"`
	City       string `json:"city" gorm:"size:100"`
	State      string `json:"state" gorm:"size:100"`
	ZipCode    string `json:"zip_code" gorm:"size:20"`
	ProfilePic string `json:"profile_pic" gorm:"size:255"`
}

// AccountStats are counters maintained by the order pipeline.
type AccountStats struct {
	CartItems     int             `json:"cart_items" gorm:"not null;default:0"`
	OrdersCount   int             `json:"orders_count" gorm:"not null;default:0"`
	TotalSpent    decimal.Decimal `json:"total_spent" gorm:"type:decimal(20,2);not null;default:0"`
	WishlistCount int             `json:"wishlist_count" gorm:"not null;default:0"`
}

// AccountSettings are user preferences.
type AccountSettings struct {
	EmailNotifications bool `json:"email_notifications" gorm:"not null;default:true"`
	OrderUpdates       bool `json:"order_updates" gorm:"not null;default:true"`
	Newsletter         bool `json:"newsletter" gorm:"not null;default:true"`
	TwoFactorAuth      bool `json:"two_factor_auth" gorm:"not null;default:false"`
}

// DefaultSettings returns the settings every new account starts with.
func DefaultSettings() AccountSettings {
	return AccountSettings{
		EmailNotifications: true,
		OrderUpdates:       true,
		Newsletter:         true,
		TwoFactorAuth:      false,
	}
}

// BeforeCreate sets UUID before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
