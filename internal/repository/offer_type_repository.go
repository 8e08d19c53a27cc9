package repository

import (
	"errors"

	"github.com/dealat-next/internal/models"

	"gorm.io/gorm"
)

// OfferTypeRepository offer type reference data access interface
type OfferTypeRepository interface {
	GetByID(id uint) (*models.OfferType, error)
	Create(offerType *models.OfferType) error
	Update(offerType *models.OfferType) error
	Delete(id uint) error
	List(onlyActive bool) ([]models.OfferType, error)
}

// GormOfferTypeRepository GORM implementation
type GormOfferTypeRepository struct {
	db *gorm.DB
}

// NewOfferTypeRepository creates the offer type repository
func NewOfferTypeRepository(db *gorm.DB) *GormOfferTypeRepository {
	return &GormOfferTypeRepository{db: db}
}

// GetByID fetches an offer type by id
func (r *GormOfferTypeRepository) GetByID(id uint) (*models.OfferType, error) {
	var offerType models.OfferType
	if err := r.db.First(&offerType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offerType, nil
}

// Create inserts an offer type
func (r *GormOfferTypeRepository) Create(offerType *models.OfferType) error {
	return r.db.Create(offerType).Error
}

// Update saves all offer type fields
func (r *GormOfferTypeRepository) Update(offerType *models.OfferType) error {
	return r.db.Save(offerType).Error
}

// Delete removes an offer type
func (r *GormOfferTypeRepository) Delete(id uint) error {
	return r.db.Delete(&models.OfferType{}, id).Error
}

// List fetches offer types
func (r *GormOfferTypeRepository) List(onlyActive bool) ([]models.OfferType, error) {
	query := r.db.Model(&models.OfferType{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var offerTypes []models.OfferType
	if err := query.Order("id asc").Find(&offerTypes).Error; err != nil {
		return nil, err
	}
	return offerTypes, nil
}
