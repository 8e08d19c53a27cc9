package repository

import (
	"github.com/dealat-next/internal/models"

	"gorm.io/gorm"
)

// AssignmentRepository provider relation data access interface
type AssignmentRepository interface {
	ListTargets(providerID uint, relation string) ([]uint, error)
	Exists(providerID uint, relation string, targetID uint) (bool, error)
	AddTargets(providerID uint, relation string, targetIDs []uint) error
	RemoveTargets(providerID uint, relation string, targetIDs []uint) error
	ProvidersForTarget(relation string, targetID uint) ([]uint, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormAssignmentRepository
}

// GormAssignmentRepository GORM implementation
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates the assignment repository
func NewAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// WithTx binds a transaction
func (r *GormAssignmentRepository) WithTx(tx *gorm.DB) *GormAssignmentRepository {
	if tx == nil {
		return r
	}
	return &GormAssignmentRepository{db: tx}
}

// Transaction runs fn inside a database transaction
func (r *GormAssignmentRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// ListTargets returns the currently assigned target ids
func (r *GormAssignmentRepository) ListTargets(providerID uint, relation string) ([]uint, error) {
	var targets []uint
	if err := r.db.Model(&models.ProviderAssignment{}).
		Where("provider_id = ? AND relation = ?", providerID, relation).
		Order("target_id asc").
		Pluck("target_id", &targets).Error; err != nil {
		return nil, err
	}
	return targets, nil
}

// Exists reports whether a relation row is present
func (r *GormAssignmentRepository) Exists(providerID uint, relation string, targetID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.ProviderAssignment{}).
		Where("provider_id = ? AND relation = ? AND target_id = ?", providerID, relation, targetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddTargets inserts relation rows for the given targets
func (r *GormAssignmentRepository) AddTargets(providerID uint, relation string, targetIDs []uint) error {
	if len(targetIDs) == 0 {
		return nil
	}
	rows := make([]models.ProviderAssignment, 0, len(targetIDs))
	for _, targetID := range targetIDs {
		rows = append(rows, models.ProviderAssignment{
			ProviderID: providerID,
			Relation:   relation,
			TargetID:   targetID,
		})
	}
	return r.db.Create(&rows).Error
}

// RemoveTargets deletes relation rows for the given targets
func (r *GormAssignmentRepository) RemoveTargets(providerID uint, relation string, targetIDs []uint) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.
		Where("provider_id = ? AND relation = ? AND target_id IN ?", providerID, relation, targetIDs).
		Delete(&models.ProviderAssignment{}).Error
}

// ProvidersForTarget returns providers holding a relation row for the target
func (r *GormAssignmentRepository) ProvidersForTarget(relation string, targetID uint) ([]uint, error) {
	var providers []uint
	if err := r.db.Model(&models.ProviderAssignment{}).
		Where("relation = ? AND target_id = ?", relation, targetID).
		Pluck("provider_id", &providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}
