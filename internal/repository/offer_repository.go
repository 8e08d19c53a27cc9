package repository

import (
	"errors"

	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OfferRepository offer data access interface
type OfferRepository interface {
	GetByID(id uint) (*models.Offer, error)
	GetByIDForUpdate(id uint) (*models.Offer, error)
	Create(offer *models.Offer) error
	Update(offer *models.Offer) error
	UpdateFields(id uint, updates map[string]interface{}) error
	// UpdateStatusIf transitions status only when the stored status matches
	// fromStatus; returns the number of rows changed.
	UpdateStatusIf(id uint, fromStatus string, updates map[string]interface{}) (int64, error)
	Delete(id uint) error
	List(filter OfferListFilter) ([]models.Offer, int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormOfferRepository
}

// GormOfferRepository GORM implementation
type GormOfferRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates the offer repository
func NewOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

// WithTx binds a transaction
func (r *GormOfferRepository) WithTx(tx *gorm.DB) *GormOfferRepository {
	if tx == nil {
		return r
	}
	return &GormOfferRepository{db: tx}
}

// Transaction runs fn inside a database transaction
func (r *GormOfferRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// GetByID fetches an offer by id
func (r *GormOfferRepository) GetByID(id uint) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offer, nil
}

// GetByIDForUpdate fetches an offer holding a row lock; must run inside a
// transaction bound via WithTx.
func (r *GormOfferRepository) GetByIDForUpdate(id uint) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offer, nil
}

// Create inserts an offer
func (r *GormOfferRepository) Create(offer *models.Offer) error {
	return r.db.Create(offer).Error
}

// Update saves all offer fields
func (r *GormOfferRepository) Update(offer *models.Offer) error {
	return r.db.Save(offer).Error
}

// UpdateFields applies a partial update
func (r *GormOfferRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Offer{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateStatusIf conditional status transition keyed on the expected prior status
func (r *GormOfferRepository) UpdateStatusIf(id uint, fromStatus string, updates map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.Offer{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// Delete removes an offer
func (r *GormOfferRepository) Delete(id uint) error {
	return r.db.Delete(&models.Offer{}, id).Error
}

// List fetches offers with filters
func (r *GormOfferRepository) List(filter OfferListFilter) ([]models.Offer, int64, error) {
	query := r.db.Model(&models.Offer{})

	if filter.ProviderID != 0 {
		query = query.Where("provider_id = ?", filter.ProviderID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.OfferTypeID != 0 {
		query = query.Where("offer_type_id = ?", filter.OfferTypeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OnlyPublic {
		query = query.Where("is_public = ? AND status = ?", true, constants.OfferStatusLive)
	}
	if filter.LiveAt != nil {
		now := *filter.LiveAt
		query = query.Where("(starts_at IS NULL OR starts_at <= ?)", now)
		query = query.Where("(ends_at IS NULL OR ends_at >= ?)", now)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title_ar LIKE ? OR title_en LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var offers []models.Offer
	if err := query.Order("id desc").Find(&offers).Error; err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}
