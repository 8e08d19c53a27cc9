package constants

// Offer status constants
const (
	OfferStatusDraft           = "draft"
	OfferStatusPendingApproval = "pending_approval"
	OfferStatusLive            = "live"
	OfferStatusRejected        = "rejected"
	// OfferStatusExpired is derived from the validity window at read time,
	// never stored.
	OfferStatusExpired = "expired"
)

// Redemption status constants
const (
	RedemptionStatusPending   = "pending"
	RedemptionStatusCompleted = "completed"
	RedemptionStatusRejected  = "rejected"
)

// Loyalty tier constants
const (
	TierGold   = "gold"
	TierSilver = "silver"
	TierBronze = "bronze"
)

// Account role constants
const (
	RoleAdmin       = "admin"
	RoleProvider    = "provider"
	RoleSubProvider = "subprovider"
	RoleUser        = "user"
)

// Account status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Provider assignment relation constants
const (
	RelationCategory    = "category"
	RelationGovernorate = "governorate"
	RelationSubProvider = "subprovider"
)

// Notification type constants
const (
	NotificationOfferApproved = "offer_approved"
	NotificationOfferRejected = "offer_rejected"
)

// Queue name constants
const (
	QueueDefault = "default"
)

// Queue task name constants
const (
	TaskOfferStatusNotify = "offer:status_notify"
)
