package service

import (
	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/repository"

	"gorm.io/gorm"
)

// QuotaService derives redemption capacity from the ledger. Counters are
// never stored: remaining capacity is always recomputed from Completed
// redemptions so it cannot drift from the rows themselves.
type QuotaService struct {
	offerRepo      repository.OfferRepository
	redemptionRepo repository.RedemptionRepository
}

// QuotaSnapshot remaining capacity for one offer
type QuotaSnapshot struct {
	Total           int   `json:"total"`
	TotalUsed       int64 `json:"total_used"`
	TotalRemaining  int   `json:"total_remaining"`
	SilverCap       int   `json:"silver_cap"`
	SilverUsed      int64 `json:"silver_used"`
	SilverRemaining int   `json:"silver_remaining"`
	BronzeCap       int   `json:"bronze_cap"`
	BronzeUsed      int64 `json:"bronze_used"`
	BronzeRemaining int   `json:"bronze_remaining"`
}

// NewQuotaService creates the quota accountant
func NewQuotaService(offerRepo repository.OfferRepository, redemptionRepo repository.RedemptionRepository) *QuotaService {
	return &QuotaService{
		offerRepo:      offerRepo,
		redemptionRepo: redemptionRepo,
	}
}

// WithTx binds both repositories to a transaction so the ledger can
// evaluate quotas against rows visible inside its own settlement.
func (s *QuotaService) WithTx(tx *gorm.DB) *QuotaService {
	if s == nil || tx == nil {
		return s
	}
	return &QuotaService{
		offerRepo:      s.offerRepo.WithTx(tx),
		redemptionRepo: s.redemptionRepo.WithTx(tx),
	}
}

// Remaining reports the remaining capacity for a tier, bounded by the
// total cap; gold draws only on the total.
func (s *QuotaService) Remaining(offerID uint, tier string) (int, error) {
	if s == nil || s.offerRepo == nil || s.redemptionRepo == nil {
		return 0, ErrOfferFetchFailed
	}
	offer, err := s.offerRepo.GetByID(offerID)
	if err != nil {
		return 0, ErrOfferFetchFailed
	}
	if offer == nil {
		return 0, ErrOfferNotFound
	}
	return s.remainingForOffer(offer, tier)
}

// RemainingTotal reports the remaining overall capacity
func (s *QuotaService) RemainingTotal(offerID uint) (int, error) {
	return s.Remaining(offerID, constants.TierGold)
}

// WouldExceed reports whether settling one more redemption under the
// tier would break either the tier cap or the total cap.
func (s *QuotaService) WouldExceed(offerID uint, tier string) (bool, error) {
	remaining, err := s.Remaining(offerID, tier)
	if err != nil {
		return false, err
	}
	return remaining <= 0, nil
}

// Snapshot reports per-tier usage for an offer
func (s *QuotaService) Snapshot(offerID uint) (*QuotaSnapshot, error) {
	if s == nil || s.offerRepo == nil || s.redemptionRepo == nil {
		return nil, ErrOfferFetchFailed
	}
	offer, err := s.offerRepo.GetByID(offerID)
	if err != nil {
		return nil, ErrOfferFetchFailed
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}

	totalUsed, err := s.redemptionRepo.CountCompleted(offer.ID)
	if err != nil {
		return nil, ErrRedemptionFetchFailed
	}
	silverUsed, err := s.redemptionRepo.CountCompletedByTier(offer.ID, constants.TierSilver)
	if err != nil {
		return nil, ErrRedemptionFetchFailed
	}
	bronzeUsed, err := s.redemptionRepo.CountCompletedByTier(offer.ID, constants.TierBronze)
	if err != nil {
		return nil, ErrRedemptionFetchFailed
	}

	totalRemaining := clampRemaining(offer.MaxUsage, totalUsed)
	return &QuotaSnapshot{
		Total:           offer.MaxUsage,
		TotalUsed:       totalUsed,
		TotalRemaining:  totalRemaining,
		SilverCap:       offer.SilverMaxUsage,
		SilverUsed:      silverUsed,
		SilverRemaining: minInt(clampRemaining(offer.SilverMaxUsage, silverUsed), totalRemaining),
		BronzeCap:       offer.BronzeMaxUsage,
		BronzeUsed:      bronzeUsed,
		BronzeRemaining: minInt(clampRemaining(offer.BronzeMaxUsage, bronzeUsed), totalRemaining),
	}, nil
}

// remainingForOffer evaluates against an already-fetched offer, used by
// the ledger inside its settlement transaction with the row lock held.
func (s *QuotaService) remainingForOffer(offer *models.Offer, tier string) (int, error) {
	totalUsed, err := s.redemptionRepo.CountCompleted(offer.ID)
	if err != nil {
		return 0, ErrRedemptionFetchFailed
	}
	totalRemaining := clampRemaining(offer.MaxUsage, totalUsed)

	tierCap, tierCapped := offer.TierCap(tier)
	if !tierCapped {
		return totalRemaining, nil
	}

	tierUsed, err := s.redemptionRepo.CountCompletedByTier(offer.ID, tier)
	if err != nil {
		return 0, ErrRedemptionFetchFailed
	}
	return minInt(clampRemaining(tierCap, tierUsed), totalRemaining), nil
}

func clampRemaining(cap int, used int64) int {
	remaining := cap - int(used)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
