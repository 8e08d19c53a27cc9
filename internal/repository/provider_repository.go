package repository

import (
	"errors"

	"github.com/dealat-next/internal/models"

	"gorm.io/gorm"
)

// ProviderRepository merchant data access interface
type ProviderRepository interface {
	GetByID(id uint) (*models.Provider, error)
	Create(provider *models.Provider) error
	Update(provider *models.Provider) error
	Delete(id uint) error
	List(filter ProviderListFilter) ([]models.Provider, int64, error)
	WithTx(tx *gorm.DB) *GormProviderRepository
}

// GormProviderRepository GORM implementation
type GormProviderRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates the provider repository
func NewProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// WithTx binds a transaction
func (r *GormProviderRepository) WithTx(tx *gorm.DB) *GormProviderRepository {
	if tx == nil {
		return r
	}
	return &GormProviderRepository{db: tx}
}

// GetByID fetches a provider by id
func (r *GormProviderRepository) GetByID(id uint) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.First(&provider, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

// Create inserts a provider
func (r *GormProviderRepository) Create(provider *models.Provider) error {
	return r.db.Create(provider).Error
}

// Update saves all provider fields
func (r *GormProviderRepository) Update(provider *models.Provider) error {
	return r.db.Save(provider).Error
}

// Delete removes a provider
func (r *GormProviderRepository) Delete(id uint) error {
	return r.db.Delete(&models.Provider{}, id).Error
}

// List fetches providers with filters
func (r *GormProviderRepository) List(filter ProviderListFilter) ([]models.Provider, int64, error) {
	query := r.db.Model(&models.Provider{})

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name_ar LIKE ? OR name_en LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var providers []models.Provider
	if err := query.Order("id desc").Find(&providers).Error; err != nil {
		return nil, 0, err
	}
	return providers, total, nil
}
