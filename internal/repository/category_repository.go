package repository

import (
	"errors"

	"github.com/dealat-next/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository category reference data access interface
type CategoryRepository interface {
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	List(onlyActive bool) ([]models.Category, error)
}

// GormCategoryRepository GORM implementation
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates the category repository
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// GetByID fetches a category by id
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a category
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update saves all category fields
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// List fetches categories
func (r *GormCategoryRepository) List(onlyActive bool) ([]models.Category, error) {
	query := r.db.Model(&models.Category{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var categories []models.Category
	if err := query.Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
