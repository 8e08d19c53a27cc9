package models

import (
	"time"

	"gorm.io/gorm"
)

// Category offer classification reference row
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`                   // primary key
	NameAr    string         `gorm:"not null" json:"name_ar"`                // Arabic name
	NameEn    string         `gorm:"not null" json:"name_en"`                // English name
	IconURL   string         `gorm:"default:''" json:"icon_url"`             // icon URL
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"` // active flag
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                // creation time
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                // update time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                         // soft delete time
}

// TableName sets the table name
func (Category) TableName() string {
	return "categories"
}

// Governorate regional reference row providers are assigned to
type Governorate struct {
	ID        uint           `gorm:"primarykey" json:"id"`                   // primary key
	NameAr    string         `gorm:"not null" json:"name_ar"`                // Arabic name
	NameEn    string         `gorm:"not null" json:"name_en"`                // English name
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"` // active flag
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                // creation time
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                // update time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                         // soft delete time
}

// TableName sets the table name
func (Governorate) TableName() string {
	return "governorates"
}

// OfferType offer kind reference row (e.g. percentage, buy-one-get-one)
type OfferType struct {
	ID        uint           `gorm:"primarykey" json:"id"`                   // primary key
	NameAr    string         `gorm:"not null" json:"name_ar"`                // Arabic name
	NameEn    string         `gorm:"not null" json:"name_en"`                // English name
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"` // active flag
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                // creation time
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                // update time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                         // soft delete time
}

// TableName sets the table name
func (OfferType) TableName() string {
	return "offer_types"
}
