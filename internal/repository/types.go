package repository

import "time"

// OfferListFilter offer list filter conditions
type OfferListFilter struct {
	Page        int
	PageSize    int
	ProviderID  uint
	CategoryID  uint
	OfferTypeID uint
	Status      string
	Search      string
	OnlyPublic  bool
	// LiveAt restricts to offers whose validity window contains the instant
	// (passive expiry applied at read time).
	LiveAt *time.Time
}

// RedemptionListFilter redemption list filter conditions
type RedemptionListFilter struct {
	Page        int
	PageSize    int
	OfferID     uint
	UserID      uint
	ProviderID  uint
	Status      string
	Tier        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter user list filter conditions
type UserListFilter struct {
	Page       int
	PageSize   int
	Role       string
	ProviderID uint
	Keyword    string
	Status     string
}

// ProviderListFilter provider list filter conditions
type ProviderListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// NotificationListFilter notification list filter conditions
type NotificationListFilter struct {
	Page       int
	PageSize   int
	UserID     uint
	Type       string
	UnreadOnly bool
}
