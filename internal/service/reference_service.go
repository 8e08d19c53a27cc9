package service

import (
	"strings"
	"time"

	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/repository"
)

// ReferenceService reference data CRUD for categories, governorates and
// offer types. Minimal surface: the engine's relations target these rows
// but the rows themselves carry no behavior.
type ReferenceService struct {
	categoryRepo    repository.CategoryRepository
	governorateRepo repository.GovernorateRepository
	offerTypeRepo   repository.OfferTypeRepository
	offerRepo       repository.OfferRepository
}

// ReferenceInput bilingual reference row input
type ReferenceInput struct {
	NameAr   string
	NameEn   string
	IconURL  string
	IsActive *bool
}

// NewReferenceService creates the reference data service
func NewReferenceService(
	categoryRepo repository.CategoryRepository,
	governorateRepo repository.GovernorateRepository,
	offerTypeRepo repository.OfferTypeRepository,
	offerRepo repository.OfferRepository,
) *ReferenceService {
	return &ReferenceService{
		categoryRepo:    categoryRepo,
		governorateRepo: governorateRepo,
		offerTypeRepo:   offerTypeRepo,
		offerRepo:       offerRepo,
	}
}

func validateReferenceInput(input ReferenceInput) error {
	if strings.TrimSpace(input.NameAr) == "" && strings.TrimSpace(input.NameEn) == "" {
		return ErrReferenceInvalid
	}
	return nil
}

// ListCategories fetches categories
func (s *ReferenceService) ListCategories(onlyActive bool) ([]models.Category, error) {
	if s == nil || s.categoryRepo == nil {
		return nil, ErrReferenceNotFound
	}
	return s.categoryRepo.List(onlyActive)
}

// CreateCategory inserts a category
func (s *ReferenceService) CreateCategory(input ReferenceInput) (*models.Category, error) {
	if s == nil || s.categoryRepo == nil {
		return nil, ErrReferenceInvalid
	}
	if err := validateReferenceInput(input); err != nil {
		return nil, err
	}
	now := time.Now()
	category := &models.Category{
		NameAr:    strings.TrimSpace(input.NameAr),
		NameEn:    strings.TrimSpace(input.NameEn),
		IconURL:   strings.TrimSpace(input.IconURL),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates a category
func (s *ReferenceService) UpdateCategory(id uint, input ReferenceInput) (*models.Category, error) {
	if s == nil || s.categoryRepo == nil || id == 0 {
		return nil, ErrReferenceInvalid
	}
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrReferenceNotFound
	}
	if name := strings.TrimSpace(input.NameAr); name != "" {
		category.NameAr = name
	}
	if name := strings.TrimSpace(input.NameEn); name != "" {
		category.NameEn = name
	}
	if icon := strings.TrimSpace(input.IconURL); icon != "" {
		category.IconURL = icon
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	category.UpdatedAt = time.Now()
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category unless offers still reference it
func (s *ReferenceService) DeleteCategory(id uint) error {
	if s == nil || s.categoryRepo == nil || id == 0 {
		return ErrReferenceInvalid
	}
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrReferenceNotFound
	}
	if s.offerRepo != nil {
		_, total, err := s.offerRepo.List(repository.OfferListFilter{CategoryID: id, PageSize: 1})
		if err != nil {
			return err
		}
		if total > 0 {
			return ErrReferenceInUse
		}
	}
	return s.categoryRepo.Delete(id)
}

// ListGovernorates fetches governorates
func (s *ReferenceService) ListGovernorates(onlyActive bool) ([]models.Governorate, error) {
	if s == nil || s.governorateRepo == nil {
		return nil, ErrReferenceNotFound
	}
	return s.governorateRepo.List(onlyActive)
}

// CreateGovernorate inserts a governorate
func (s *ReferenceService) CreateGovernorate(input ReferenceInput) (*models.Governorate, error) {
	if s == nil || s.governorateRepo == nil {
		return nil, ErrReferenceInvalid
	}
	if err := validateReferenceInput(input); err != nil {
		return nil, err
	}
	now := time.Now()
	governorate := &models.Governorate{
		NameAr:    strings.TrimSpace(input.NameAr),
		NameEn:    strings.TrimSpace(input.NameEn),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.IsActive != nil {
		governorate.IsActive = *input.IsActive
	}
	if err := s.governorateRepo.Create(governorate); err != nil {
		return nil, err
	}
	return governorate, nil
}

// UpdateGovernorate updates a governorate
func (s *ReferenceService) UpdateGovernorate(id uint, input ReferenceInput) (*models.Governorate, error) {
	if s == nil || s.governorateRepo == nil || id == 0 {
		return nil, ErrReferenceInvalid
	}
	governorate, err := s.governorateRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if governorate == nil {
		return nil, ErrReferenceNotFound
	}
	if name := strings.TrimSpace(input.NameAr); name != "" {
		governorate.NameAr = name
	}
	if name := strings.TrimSpace(input.NameEn); name != "" {
		governorate.NameEn = name
	}
	if input.IsActive != nil {
		governorate.IsActive = *input.IsActive
	}
	governorate.UpdatedAt = time.Now()
	if err := s.governorateRepo.Update(governorate); err != nil {
		return nil, err
	}
	return governorate, nil
}

// ListOfferTypes fetches offer types
func (s *ReferenceService) ListOfferTypes(onlyActive bool) ([]models.OfferType, error) {
	if s == nil || s.offerTypeRepo == nil {
		return nil, ErrReferenceNotFound
	}
	return s.offerTypeRepo.List(onlyActive)
}

// CreateOfferType inserts an offer type
func (s *ReferenceService) CreateOfferType(input ReferenceInput) (*models.OfferType, error) {
	if s == nil || s.offerTypeRepo == nil {
		return nil, ErrReferenceInvalid
	}
	if err := validateReferenceInput(input); err != nil {
		return nil, err
	}
	now := time.Now()
	offerType := &models.OfferType{
		NameAr:    strings.TrimSpace(input.NameAr),
		NameEn:    strings.TrimSpace(input.NameEn),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.IsActive != nil {
		offerType.IsActive = *input.IsActive
	}
	if err := s.offerTypeRepo.Create(offerType); err != nil {
		return nil, err
	}
	return offerType, nil
}

// UpdateOfferType updates an offer type
func (s *ReferenceService) UpdateOfferType(id uint, input ReferenceInput) (*models.OfferType, error) {
	if s == nil || s.offerTypeRepo == nil || id == 0 {
		return nil, ErrReferenceInvalid
	}
	offerType, err := s.offerTypeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if offerType == nil {
		return nil, ErrReferenceNotFound
	}
	if name := strings.TrimSpace(input.NameAr); name != "" {
		offerType.NameAr = name
	}
	if name := strings.TrimSpace(input.NameEn); name != "" {
		offerType.NameEn = name
	}
	if input.IsActive != nil {
		offerType.IsActive = *input.IsActive
	}
	offerType.UpdatedAt = time.Now()
	if err := s.offerTypeRepo.Update(offerType); err != nil {
		return nil, err
	}
	return offerType, nil
}
