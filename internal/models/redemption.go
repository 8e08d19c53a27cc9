package models

import (
	"time"

	"gorm.io/gorm"
)

// Redemption one user's scan of an offer, settled at most once
type Redemption struct {
	ID        uint           `gorm:"primarykey" json:"id"`                          // primary key
	Code      string         `gorm:"uniqueIndex;not null" json:"code"`              // scan code (uuid)
	OfferID   uint           `gorm:"index;not null" json:"offer_id"`                // redeemed offer
	UserID    uint           `gorm:"index;not null" json:"user_id"`                 // redeeming user
	Tier      string         `gorm:"index;not null" json:"tier"`                    // loyalty tier at scan time
	Status    string         `gorm:"index;not null;default:'pending'" json:"status"` // pending / completed / rejected
	SettledBy *uint          `gorm:"index" json:"settled_by"`                       // settling staff account
	SettledAt *time.Time     `json:"settled_at"`                                    // settlement time
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                       // scan time
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                       // update time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                // soft delete time
}

// TableName sets the table name
func (Redemption) TableName() string {
	return "redemptions"
}
