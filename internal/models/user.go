package models

import (
	"time"

	"gorm.io/gorm"
)

// User account row shared by staff and redeemers, distinguished by role
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                          // primary key
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`             // login email
	PasswordHash       string         `gorm:"not null" json:"-"`                             // password hash, never returned
	DisplayName        string         `gorm:"default:''" json:"display_name"`                // display name
	Role               string         `gorm:"index;not null;default:'user'" json:"role"`     // admin / provider / subprovider / user
	ProviderID         *uint          `gorm:"index" json:"provider_id"`                      // owning provider for provider-side roles
	LoyaltyTier        string         `gorm:"not null;default:'bronze'" json:"loyalty_tier"` // gold / silver / bronze, meaningful for redeemers
	Status             string         `gorm:"default:'active'" json:"status"`                // account status
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                                // tokens issued before this moment are invalid
	LastLoginAt        *time.Time     `json:"last_login_at"`                                 // last login time
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                       // creation time
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                       // update time
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                // soft delete time
}

// TableName sets the table name
func (User) TableName() string {
	return "users"
}
