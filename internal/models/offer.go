package models

import (
	"time"

	"github.com/dealat-next/internal/constants"

	"gorm.io/gorm"
)

// Offer merchant promotion with tiered redemption quotas
type Offer struct {
	ID               uint           `gorm:"primarykey" json:"id"`                               // primary key
	ProviderID       uint           `gorm:"index;not null" json:"provider_id"`                  // owning provider
	CategoryID       uint           `gorm:"index;not null" json:"category_id"`                  // classification category
	OfferTypeID      uint           `gorm:"index;not null" json:"offer_type_id"`                // offer kind
	IsLimited        bool           `gorm:"not null;default:false" json:"is_limited"`           // limited vs standard
	TitleAr          string         `gorm:"not null" json:"title_ar"`                           // Arabic title
	TitleEn          string         `gorm:"not null" json:"title_en"`                           // English title
	DetailsAr        string         `gorm:"type:text" json:"details_ar"`                        // Arabic details
	DetailsEn        string         `gorm:"type:text" json:"details_en"`                        // English details
	ImageURL         string         `gorm:"default:''" json:"image_url"`                        // offer image URL (produced externally)
	Value1           Amount         `gorm:"type:decimal(20,2);not null" json:"value1"`          // primary value (percentage or amount)
	Value2           Amount         `gorm:"type:decimal(20,2);not null;default:0" json:"value2"` // secondary value
	MaxUsage         int            `gorm:"not null;default:0" json:"max_usage"`                // total redemption cap
	SilverMaxUsage   int            `gorm:"not null;default:0" json:"silver_max_usage"`         // silver tier sub-cap
	BronzeMaxUsage   int            `gorm:"not null;default:0" json:"bronze_max_usage"`         // bronze tier sub-cap
	Status           string         `gorm:"index;not null;default:'draft'" json:"status"`       // lifecycle status
	IsPublic         bool           `gorm:"index;not null;default:false" json:"is_public"`      // public visibility flag
	StartsAt         *time.Time     `gorm:"index" json:"starts_at"`                             // validity window start
	EndsAt           *time.Time     `gorm:"index" json:"ends_at"`                               // validity window end
	GuestEligible    bool           `gorm:"not null;default:false" json:"guest_eligible"`       // guests may view
	DeliveryEligible bool           `gorm:"not null;default:false" json:"delivery_eligible"`    // valid for delivery orders
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                            // creation time
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                            // update time
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                     // soft delete time
}

// TableName sets the table name
func (Offer) TableName() string {
	return "offers"
}

// EffectiveState derives the visible lifecycle state at the given moment.
// A live offer outside its validity window reads as expired; nothing is stored.
func (o *Offer) EffectiveState(now time.Time) string {
	if o.Status != constants.OfferStatusLive {
		return o.Status
	}
	if o.EndsAt != nil && now.After(*o.EndsAt) {
		return constants.OfferStatusExpired
	}
	return constants.OfferStatusLive
}

// IsRedeemable reports whether the offer accepts new redemptions now
func (o *Offer) IsRedeemable(now time.Time) bool {
	if o.EffectiveState(now) != constants.OfferStatusLive || !o.IsPublic {
		return false
	}
	if o.StartsAt != nil && now.Before(*o.StartsAt) {
		return false
	}
	return true
}

// TierCap returns the configured cap for a tier; gold draws only on the total cap
func (o *Offer) TierCap(tier string) (int, bool) {
	switch tier {
	case constants.TierSilver:
		return o.SilverMaxUsage, true
	case constants.TierBronze:
		return o.BronzeMaxUsage, true
	case constants.TierGold:
		return 0, false
	default:
		return 0, false
	}
}
