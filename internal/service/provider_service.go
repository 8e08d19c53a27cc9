package service

import (
	"strings"
	"time"

	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/repository"
)

// ProviderService merchant management service
type ProviderService struct {
	repo     repository.ProviderRepository
	userRepo repository.UserRepository
	authSvc  *AuthService
}

// ProviderInput merchant create/update input
type ProviderInput struct {
	NameAr   string
	NameEn   string
	LogoURL  string
	IsActive *bool
}

// ProviderOwnerInput staff owner account input for a new merchant
type ProviderOwnerInput struct {
	Email       string
	Password    string
	DisplayName string
}

// ProviderListInput merchant list input
type ProviderListInput struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// NewProviderService creates the merchant service
func NewProviderService(repo repository.ProviderRepository, userRepo repository.UserRepository, authSvc *AuthService) *ProviderService {
	return &ProviderService{
		repo:     repo,
		userRepo: userRepo,
		authSvc:  authSvc,
	}
}

// Create registers a merchant, optionally with its owner staff account
func (s *ProviderService) Create(input ProviderInput, owner *ProviderOwnerInput) (*models.Provider, error) {
	if s == nil || s.repo == nil {
		return nil, ErrProviderInvalid
	}
	if strings.TrimSpace(input.NameAr) == "" && strings.TrimSpace(input.NameEn) == "" {
		return nil, NewValidationError("name", "name is required")
	}

	now := time.Now()
	provider := &models.Provider{
		NameAr:    strings.TrimSpace(input.NameAr),
		NameEn:    strings.TrimSpace(input.NameEn),
		LogoURL:   strings.TrimSpace(input.LogoURL),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.IsActive != nil {
		provider.IsActive = *input.IsActive
	}
	if err := s.repo.Create(provider); err != nil {
		return nil, err
	}

	if owner != nil && s.userRepo != nil && s.authSvc != nil {
		email := strings.ToLower(strings.TrimSpace(owner.Email))
		if email == "" {
			return nil, NewValidationError("owner_email", "owner email is required")
		}
		existing, err := s.userRepo.GetByEmail(email)
		if err != nil {
			return nil, ErrUserFetchFailed
		}
		if existing != nil {
			return nil, ErrUserExists
		}
		hash, err := s.authSvc.HashPassword(owner.Password)
		if err != nil {
			return nil, ErrUserCreateFailed
		}
		staff := &models.User{
			Email:        email,
			PasswordHash: hash,
			DisplayName:  strings.TrimSpace(owner.DisplayName),
			Role:         constants.RoleProvider,
			ProviderID:   &provider.ID,
			LoyaltyTier:  constants.TierBronze,
			Status:       constants.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.userRepo.Create(staff); err != nil {
			return nil, ErrUserCreateFailed
		}
	}
	return provider, nil
}

// Update modifies a merchant
func (s *ProviderService) Update(id uint, input ProviderInput) (*models.Provider, error) {
	if s == nil || s.repo == nil || id == 0 {
		return nil, ErrProviderInvalid
	}
	provider, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	if name := strings.TrimSpace(input.NameAr); name != "" {
		provider.NameAr = name
	}
	if name := strings.TrimSpace(input.NameEn); name != "" {
		provider.NameEn = name
	}
	if logo := strings.TrimSpace(input.LogoURL); logo != "" {
		provider.LogoURL = logo
	}
	if input.IsActive != nil {
		provider.IsActive = *input.IsActive
	}
	provider.UpdatedAt = time.Now()
	if err := s.repo.Update(provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// Get fetches a merchant
func (s *ProviderService) Get(id uint) (*models.Provider, error) {
	if s == nil || s.repo == nil || id == 0 {
		return nil, ErrProviderInvalid
	}
	provider, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	return provider, nil
}

// List fetches merchants
func (s *ProviderService) List(input ProviderListInput) ([]models.Provider, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, ErrProviderInvalid
	}
	return s.repo.List(repository.ProviderListFilter{
		Page:       input.Page,
		PageSize:   input.PageSize,
		Search:     strings.TrimSpace(input.Search),
		OnlyActive: input.OnlyActive,
	})
}
