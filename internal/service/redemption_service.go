package service

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/dealat-next/internal/authz"
	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/repository"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

const defaultQRCodeSize = 256

// RedemptionService redemption ledger service
type RedemptionService struct {
	repo       repository.RedemptionRepository
	offerRepo  repository.OfferRepository
	userRepo   repository.UserRepository
	quota      *QuotaService
	qrCodeSize int
}

// RedemptionListInput redemption list input
type RedemptionListInput struct {
	Page        int
	PageSize    int
	OfferID     uint
	UserID      uint
	ProviderID  uint
	Status      string
	Tier        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// SettleOutcome terminal states a settlement may choose
var settleOutcomes = map[string]bool{
	constants.RedemptionStatusCompleted: true,
	constants.RedemptionStatusRejected:  true,
}

// NewRedemptionService creates the redemption ledger service
func NewRedemptionService(
	repo repository.RedemptionRepository,
	offerRepo repository.OfferRepository,
	userRepo repository.UserRepository,
	quota *QuotaService,
	qrCodeSize int,
) *RedemptionService {
	if qrCodeSize <= 0 {
		qrCodeSize = defaultQRCodeSize
	}
	return &RedemptionService{
		repo:       repo,
		offerRepo:  offerRepo,
		userRepo:   userRepo,
		quota:      quota,
		qrCodeSize: qrCodeSize,
	}
}

// Create records a scan of an effectively live offer as a pending
// redemption. The tier is captured from the user's profile at scan time
// so later tier changes never reprice history. Returns the row plus a
// QR PNG (base64) of the scan code for the staff device.
func (s *RedemptionService) Create(offerID, userID uint) (*models.Redemption, string, error) {
	if s == nil || s.repo == nil || s.offerRepo == nil || s.userRepo == nil {
		return nil, "", ErrRedemptionCreateFailed
	}
	if offerID == 0 || userID == 0 {
		return nil, "", ErrRedemptionInvalid
	}

	offer, err := s.offerRepo.GetByID(offerID)
	if err != nil {
		return nil, "", ErrOfferFetchFailed
	}
	if offer == nil {
		return nil, "", ErrOfferNotFound
	}
	if !offer.IsRedeemable(time.Now()) {
		return nil, "", ErrOfferNotLive
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, "", ErrUserFetchFailed
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}
	if user.Status != constants.UserStatusActive {
		return nil, "", ErrUserDisabled
	}

	tier := normalizeTier(user.LoyaltyTier)
	if tier == "" {
		tier = constants.TierBronze
	}

	now := time.Now()
	redemption := &models.Redemption{
		Code:      uuid.NewString(),
		OfferID:   offer.ID,
		UserID:    user.ID,
		Tier:      tier,
		Status:    constants.RedemptionStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(redemption); err != nil {
		return nil, "", ErrRedemptionCreateFailed
	}

	qr, err := s.encodeQRCode(redemption.Code)
	if err != nil {
		// The row stands; the code itself is still usable as text.
		return redemption, "", nil
	}
	return redemption, qr, nil
}

// Settle moves a pending redemption to a terminal state. The quota
// check and the conditional write share one transaction serialized per
// offer by the row lock, so concurrent settles against the same cap
// admit exactly as many Completed rows as the cap allows.
func (s *RedemptionService) Settle(actor authz.Actor, redemptionID uint, outcome string) (*models.Redemption, error) {
	if s == nil || s.repo == nil || s.offerRepo == nil || s.quota == nil {
		return nil, ErrRedemptionInvalid
	}
	outcome = strings.TrimSpace(strings.ToLower(outcome))
	if redemptionID == 0 || !settleOutcomes[outcome] {
		return nil, ErrRedemptionInvalid
	}

	redemption, err := s.repo.GetByID(redemptionID)
	if err != nil {
		return nil, ErrRedemptionFetchFailed
	}
	if redemption == nil {
		return nil, ErrRedemptionNotFound
	}

	offer, err := s.offerRepo.GetByID(redemption.OfferID)
	if err != nil {
		return nil, ErrOfferFetchFailed
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}

	decision := authz.Decide(actor, authz.ActionSettle, offer)
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		offerRepo := s.offerRepo.WithTx(tx)
		lockedOffer, err := offerRepo.GetByIDForUpdate(redemption.OfferID)
		if err != nil {
			return ErrOfferFetchFailed
		}
		if lockedOffer == nil {
			return ErrOfferNotFound
		}

		if outcome == constants.RedemptionStatusCompleted {
			remaining, err := s.quota.WithTx(tx).remainingForOffer(lockedOffer, redemption.Tier)
			if err != nil {
				return err
			}
			if remaining <= 0 {
				return ErrQuotaExceeded
			}
		}

		rows, err := s.repo.WithTx(tx).SettleIf(redemption.ID, outcome, actor.UserID, time.Now())
		if err != nil {
			return ErrRedemptionFetchFailed
		}
		if rows == 0 {
			return ErrAlreadySettled
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	settled, err := s.repo.GetByID(redemption.ID)
	if err != nil {
		return nil, ErrRedemptionFetchFailed
	}
	return settled, nil
}

// Get fetches a redemption
func (s *RedemptionService) Get(id uint) (*models.Redemption, error) {
	if s == nil || s.repo == nil || id == 0 {
		return nil, ErrRedemptionInvalid
	}
	redemption, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrRedemptionFetchFailed
	}
	if redemption == nil {
		return nil, ErrRedemptionNotFound
	}
	return redemption, nil
}

// GetByCode fetches a redemption by its scan code
func (s *RedemptionService) GetByCode(code string) (*models.Redemption, error) {
	if s == nil || s.repo == nil {
		return nil, ErrRedemptionInvalid
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrRedemptionInvalid
	}
	redemption, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, ErrRedemptionFetchFailed
	}
	if redemption == nil {
		return nil, ErrRedemptionNotFound
	}
	return redemption, nil
}

// List fetches redemptions with filters
func (s *RedemptionService) List(input RedemptionListInput) ([]models.Redemption, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, ErrRedemptionFetchFailed
	}
	filter := repository.RedemptionListFilter{
		Page:        input.Page,
		PageSize:    input.PageSize,
		OfferID:     input.OfferID,
		UserID:      input.UserID,
		ProviderID:  input.ProviderID,
		Status:      strings.TrimSpace(strings.ToLower(input.Status)),
		Tier:        normalizeTier(input.Tier),
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
	}
	redemptions, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, ErrRedemptionFetchFailed
	}
	return redemptions, total, nil
}

func (s *RedemptionService) encodeQRCode(code string) (string, error) {
	png, err := qrcode.Encode(code, qrcode.Medium, s.qrCodeSize)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

func normalizeTier(tier string) string {
	normalized := strings.TrimSpace(strings.ToLower(tier))
	switch normalized {
	case constants.TierGold, constants.TierSilver, constants.TierBronze:
		return normalized
	default:
		return ""
	}
}
