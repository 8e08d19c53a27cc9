package repository

import (
	"errors"

	"github.com/dealat-next/internal/models"

	"gorm.io/gorm"
)

// GovernorateRepository governorate reference data access interface
type GovernorateRepository interface {
	GetByID(id uint) (*models.Governorate, error)
	Create(governorate *models.Governorate) error
	Update(governorate *models.Governorate) error
	Delete(id uint) error
	List(onlyActive bool) ([]models.Governorate, error)
}

// GormGovernorateRepository GORM implementation
type GormGovernorateRepository struct {
	db *gorm.DB
}

// NewGovernorateRepository creates the governorate repository
func NewGovernorateRepository(db *gorm.DB) *GormGovernorateRepository {
	return &GormGovernorateRepository{db: db}
}

// GetByID fetches a governorate by id
func (r *GormGovernorateRepository) GetByID(id uint) (*models.Governorate, error) {
	var governorate models.Governorate
	if err := r.db.First(&governorate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &governorate, nil
}

// Create inserts a governorate
func (r *GormGovernorateRepository) Create(governorate *models.Governorate) error {
	return r.db.Create(governorate).Error
}

// Update saves all governorate fields
func (r *GormGovernorateRepository) Update(governorate *models.Governorate) error {
	return r.db.Save(governorate).Error
}

// Delete removes a governorate
func (r *GormGovernorateRepository) Delete(id uint) error {
	return r.db.Delete(&models.Governorate{}, id).Error
}

// List fetches governorates
func (r *GormGovernorateRepository) List(onlyActive bool) ([]models.Governorate, error) {
	query := r.db.Model(&models.Governorate{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var governorates []models.Governorate
	if err := query.Order("id asc").Find(&governorates).Error; err != nil {
		return nil, err
	}
	return governorates, nil
}
