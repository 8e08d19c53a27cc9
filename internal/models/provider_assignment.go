package models

import "time"

// ProviderAssignment many-to-many relation row owned by AssignmentSynchronizer.
// The live set for (provider, relation) is exactly the set last synced; the
// subprovider relation is additionally coupled 1:1 with the target user's role.
type ProviderAssignment struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                             // primary key
	ProviderID uint      `gorm:"uniqueIndex:idx_provider_relation_target;not null" json:"provider_id"` // owning provider
	Relation   string    `gorm:"uniqueIndex:idx_provider_relation_target;not null" json:"relation"`    // category / governorate / subprovider
	TargetID   uint      `gorm:"uniqueIndex:idx_provider_relation_target;not null" json:"target_id"`   // related entity id
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                          // creation time
}

// TableName sets the table name
func (ProviderAssignment) TableName() string {
	return "provider_assignments"
}
