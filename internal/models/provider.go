package models

import (
	"time"

	"gorm.io/gorm"
)

// Provider merchant publishing offers
type Provider struct {
	ID        uint           `gorm:"primarykey" json:"id"`                   // primary key
	NameAr    string         `gorm:"not null" json:"name_ar"`                // Arabic name
	NameEn    string         `gorm:"not null" json:"name_en"`                // English name
	LogoURL   string         `gorm:"default:''" json:"logo_url"`             // logo image URL (produced externally)
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"` // active flag
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                // creation time
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                // update time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                         // soft delete time
}

// TableName sets the table name
func (Provider) TableName() string {
	return "providers"
}
