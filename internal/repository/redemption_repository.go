package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"

	"gorm.io/gorm"
)

// RedemptionRepository redemption data access interface
type RedemptionRepository interface {
	GetByID(id uint) (*models.Redemption, error)
	GetByCode(code string) (*models.Redemption, error)
	Create(redemption *models.Redemption) error
	// SettleIf moves a redemption out of pending in a single conditional
	// update; returns rows changed (0 means the row was already settled).
	SettleIf(id uint, status string, settledBy uint, settledAt time.Time) (int64, error)
	CountCompleted(offerID uint) (int64, error)
	CountCompletedByTier(offerID uint, tier string) (int64, error)
	CountByOffer(offerID uint) (int64, error)
	List(filter RedemptionListFilter) ([]models.Redemption, int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormRedemptionRepository
}

// GormRedemptionRepository GORM implementation
type GormRedemptionRepository struct {
	db *gorm.DB
}

// NewRedemptionRepository creates the redemption repository
func NewRedemptionRepository(db *gorm.DB) *GormRedemptionRepository {
	return &GormRedemptionRepository{db: db}
}

// WithTx binds a transaction
func (r *GormRedemptionRepository) WithTx(tx *gorm.DB) *GormRedemptionRepository {
	if tx == nil {
		return r
	}
	return &GormRedemptionRepository{db: tx}
}

// Transaction runs fn inside a database transaction
func (r *GormRedemptionRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// GetByID fetches a redemption by id
func (r *GormRedemptionRepository) GetByID(id uint) (*models.Redemption, error) {
	var redemption models.Redemption
	if err := r.db.First(&redemption, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &redemption, nil
}

// GetByCode fetches a redemption by scan code
func (r *GormRedemptionRepository) GetByCode(code string) (*models.Redemption, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var redemption models.Redemption
	result := r.db.Where("code = ?", code).Limit(1).Find(&redemption)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &redemption, nil
}

// Create inserts a redemption
func (r *GormRedemptionRepository) Create(redemption *models.Redemption) error {
	return r.db.Create(redemption).Error
}

// SettleIf conditional settlement keyed on the pending status
func (r *GormRedemptionRepository) SettleIf(id uint, status string, settledBy uint, settledAt time.Time) (int64, error) {
	result := r.db.Model(&models.Redemption{}).
		Where("id = ? AND status = ?", id, constants.RedemptionStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"settled_by": settledBy,
			"settled_at": settledAt,
			"updated_at": settledAt,
		})
	return result.RowsAffected, result.Error
}

// CountCompleted counts completed redemptions for an offer across all tiers
func (r *GormRedemptionRepository) CountCompleted(offerID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Redemption{}).
		Where("offer_id = ? AND status = ?", offerID, constants.RedemptionStatusCompleted).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountCompletedByTier counts completed redemptions for an offer settled under a tier
func (r *GormRedemptionRepository) CountCompletedByTier(offerID uint, tier string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Redemption{}).
		Where("offer_id = ? AND status = ? AND tier = ?", offerID, constants.RedemptionStatusCompleted, tier).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByOffer counts all redemptions referencing an offer
func (r *GormRedemptionRepository) CountByOffer(offerID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Redemption{}).
		Where("offer_id = ?", offerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// List fetches redemptions with filters
func (r *GormRedemptionRepository) List(filter RedemptionListFilter) ([]models.Redemption, int64, error) {
	query := r.db.Model(&models.Redemption{})

	if filter.OfferID != 0 {
		query = query.Where("offer_id = ?", filter.OfferID)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ProviderID != 0 {
		query = query.Where("offer_id IN (?)",
			r.db.Model(&models.Offer{}).Select("id").Where("provider_id = ?", filter.ProviderID))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Tier != "" {
		query = query.Where("tier = ?", filter.Tier)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var redemptions []models.Redemption
	if err := query.Order("id desc").Find(&redemptions).Error; err != nil {
		return nil, 0, err
	}
	return redemptions, total, nil
}
