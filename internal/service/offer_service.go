package service

import (
	"strings"
	"time"

	"github.com/dealat-next/internal/authz"
	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/logger"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/queue"
	"github.com/dealat-next/internal/repository"

	"gorm.io/gorm"
)

// allowedOfferTransitions valid lifecycle moves; expired is derived and never stored
var allowedOfferTransitions = map[string][]string{
	constants.OfferStatusDraft:           {constants.OfferStatusPendingApproval, constants.OfferStatusLive},
	constants.OfferStatusPendingApproval: {constants.OfferStatusLive, constants.OfferStatusRejected},
	constants.OfferStatusLive:            {constants.OfferStatusPendingApproval},
	constants.OfferStatusRejected:        {constants.OfferStatusPendingApproval},
}

// OfferService offer lifecycle service
type OfferService struct {
	repo           repository.OfferRepository
	redemptionRepo repository.RedemptionRepository
	categoryRepo   repository.CategoryRepository
	offerTypeRepo  repository.OfferTypeRepository
	queueClient    *queue.Client
}

// SubmitOfferInput offer submission input
type SubmitOfferInput struct {
	ProviderID       uint
	CategoryID       uint
	OfferTypeID      uint
	IsLimited        bool
	TitleAr          string
	TitleEn          string
	DetailsAr        string
	DetailsEn        string
	ImageURL         string
	Value1           models.Amount
	Value2           models.Amount
	MaxUsage         int
	SilverMaxUsage   int
	BronzeMaxUsage   int
	StartsAt         *time.Time
	EndsAt           *time.Time
	GuestEligible    bool
	DeliveryEligible bool
	// Public requests immediate visibility; only honored for admins.
	Public bool
}

// EditOfferInput offer edit input; nil fields stay unchanged
type EditOfferInput struct {
	CategoryID       *uint
	OfferTypeID      *uint
	IsLimited        *bool
	TitleAr          *string
	TitleEn          *string
	DetailsAr        *string
	DetailsEn        *string
	ImageURL         *string
	Value1           *models.Amount
	Value2           *models.Amount
	MaxUsage         *int
	SilverMaxUsage   *int
	BronzeMaxUsage   *int
	StartsAt         *time.Time
	ClearStartsAt    bool
	EndsAt           *time.Time
	ClearEndsAt      bool
	GuestEligible    *bool
	DeliveryEligible *bool
	Public           *bool
}

// OfferListInput offer list input
type OfferListInput struct {
	Page        int
	PageSize    int
	ProviderID  uint
	CategoryID  uint
	OfferTypeID uint
	Status      string
	Search      string
	OnlyPublic  bool
	OnlyLive    bool
}

// NewOfferService creates the offer lifecycle service
func NewOfferService(
	repo repository.OfferRepository,
	redemptionRepo repository.RedemptionRepository,
	categoryRepo repository.CategoryRepository,
	offerTypeRepo repository.OfferTypeRepository,
	queueClient *queue.Client,
) *OfferService {
	return &OfferService{
		repo:           repo,
		redemptionRepo: redemptionRepo,
		categoryRepo:   categoryRepo,
		offerTypeRepo:  offerTypeRepo,
		queueClient:    queueClient,
	}
}

// Submit creates an offer and routes it through the approval gate.
// Provider-side actors always land in pending_approval with is_public
// forced off; an admin submitting with Public=true goes straight live.
func (s *OfferService) Submit(actor authz.Actor, input SubmitOfferInput) (*models.Offer, error) {
	if s == nil || s.repo == nil {
		return nil, ErrOfferCreateFailed
	}

	decision := authz.Decide(actor, authz.ActionSubmitOffer, nil)
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	providerID := input.ProviderID
	if actor.Role != constants.RoleAdmin {
		providerID = actor.ProviderID
	}

	if err := s.validateSubmit(providerID, input); err != nil {
		return nil, err
	}
	if err := validateQuotaConfig(input.MaxUsage, input.SilverMaxUsage, input.BronzeMaxUsage); err != nil {
		return nil, err
	}

	isPublic := input.Public
	if forced, ok := decision.Overrides["is_public"]; ok {
		isPublic = forced == true
	}
	status := constants.OfferStatusPendingApproval
	if isPublic {
		status = constants.OfferStatusLive
	}

	now := time.Now()
	offer := &models.Offer{
		ProviderID:       providerID,
		CategoryID:       input.CategoryID,
		OfferTypeID:      input.OfferTypeID,
		IsLimited:        input.IsLimited,
		TitleAr:          strings.TrimSpace(input.TitleAr),
		TitleEn:          strings.TrimSpace(input.TitleEn),
		DetailsAr:        strings.TrimSpace(input.DetailsAr),
		DetailsEn:        strings.TrimSpace(input.DetailsEn),
		ImageURL:         strings.TrimSpace(input.ImageURL),
		Value1:           input.Value1,
		Value2:           input.Value2,
		MaxUsage:         input.MaxUsage,
		SilverMaxUsage:   input.SilverMaxUsage,
		BronzeMaxUsage:   input.BronzeMaxUsage,
		Status:           status,
		IsPublic:         isPublic,
		StartsAt:         normalizeOfferTime(input.StartsAt),
		EndsAt:           normalizeOfferTime(input.EndsAt),
		GuestEligible:    input.GuestEligible,
		DeliveryEligible: input.DeliveryEligible,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(offer); err != nil {
		return nil, ErrOfferCreateFailed
	}
	return offer, nil
}

// Approve moves a pending offer live. The transition is a single
// conditional update, a concurrent approve or reject loses with
// ErrOfferConflict instead of silently re-applying.
func (s *OfferService) Approve(actor authz.Actor, id uint) (*models.Offer, error) {
	if s == nil || s.repo == nil || id == 0 {
		return nil, ErrOfferInvalid
	}
	decision := authz.Decide(actor, authz.ActionApproveOffer, nil)
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	rows, err := s.repo.UpdateStatusIf(id, constants.OfferStatusPendingApproval, map[string]interface{}{
		"status":     constants.OfferStatusLive,
		"is_public":  true,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, ErrOfferUpdateFailed
	}
	if rows == 0 {
		offer, fetchErr := s.repo.GetByID(id)
		if fetchErr != nil {
			return nil, ErrOfferFetchFailed
		}
		if offer == nil {
			return nil, ErrOfferNotFound
		}
		return nil, ErrOfferConflict
	}

	offer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrOfferFetchFailed
	}
	s.notifyStatus(id, constants.OfferStatusLive, "")
	return offer, nil
}

// Reject declines a pending offer. Offers that already attracted
// redemptions keep a rejected row for the ledger; untouched offers are
// removed outright.
func (s *OfferService) Reject(actor authz.Actor, id uint, reason string) error {
	if s == nil || s.repo == nil || s.redemptionRepo == nil || id == 0 {
		return ErrOfferInvalid
	}
	decision := authz.Decide(actor, authz.ActionRejectOffer, nil)
	if !decision.Allowed {
		return ErrForbidden
	}

	redemptions, err := s.redemptionRepo.CountByOffer(id)
	if err != nil {
		return ErrOfferFetchFailed
	}

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		rows, err := repo.UpdateStatusIf(id, constants.OfferStatusPendingApproval, map[string]interface{}{
			"status":     constants.OfferStatusRejected,
			"is_public":  false,
			"updated_at": time.Now(),
		})
		if err != nil {
			return ErrOfferUpdateFailed
		}
		if rows == 0 {
			offer, fetchErr := repo.GetByID(id)
			if fetchErr != nil {
				return ErrOfferFetchFailed
			}
			if offer == nil {
				return ErrOfferNotFound
			}
			return ErrOfferConflict
		}
		if redemptions == 0 {
			if err := repo.Delete(id); err != nil {
				return ErrOfferDeleteFailed
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if redemptions > 0 {
		s.notifyStatus(id, constants.OfferStatusRejected, reason)
	}
	return nil
}

// Edit applies a partial update. Authorization is re-evaluated on every
// edit: a provider touching a live offer pulls it back behind the
// approval gate, admin edits keep the current state unless visibility
// is changed explicitly.
func (s *OfferService) Edit(actor authz.Actor, id uint, input EditOfferInput) (*models.Offer, error) {
	if s == nil || s.repo == nil || id == 0 {
		return nil, ErrOfferInvalid
	}
	offer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrOfferFetchFailed
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}

	decision := authz.Decide(actor, authz.ActionEditOffer, offer)
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	applyOfferEdit(offer, input)
	if err := validateQuotaConfig(offer.MaxUsage, offer.SilverMaxUsage, offer.BronzeMaxUsage); err != nil {
		return nil, err
	}
	if offer.TitleAr == "" && offer.TitleEn == "" {
		return nil, NewValidationError("title", "title is required")
	}

	if forced, ok := decision.Overrides["is_public"]; ok {
		// Provider-side edit, force the approval gate.
		offer.IsPublic = forced == true
		if !offer.IsPublic && offer.Status != constants.OfferStatusPendingApproval {
			if err := ensureOfferTransition(offer.Status, constants.OfferStatusPendingApproval); err != nil {
				return nil, err
			}
			offer.Status = constants.OfferStatusPendingApproval
		}
	} else if input.Public != nil {
		// Admin explicit visibility change.
		if *input.Public {
			offer.IsPublic = true
			offer.Status = constants.OfferStatusLive
		} else {
			offer.IsPublic = false
			if offer.Status == constants.OfferStatusLive {
				offer.Status = constants.OfferStatusPendingApproval
			}
		}
	}

	offer.UpdatedAt = time.Now()
	if err := s.repo.Update(offer); err != nil {
		return nil, ErrOfferUpdateFailed
	}
	return offer, nil
}

// Delete removes an offer; rows with settled redemptions survive as
// soft-deleted so the ledger keeps its referent.
func (s *OfferService) Delete(actor authz.Actor, id uint) error {
	if s == nil || s.repo == nil || id == 0 {
		return ErrOfferInvalid
	}
	offer, err := s.repo.GetByID(id)
	if err != nil {
		return ErrOfferFetchFailed
	}
	if offer == nil {
		return ErrOfferNotFound
	}
	decision := authz.Decide(actor, authz.ActionDeleteOffer, offer)
	if !decision.Allowed {
		return ErrForbidden
	}
	if err := s.repo.Delete(id); err != nil {
		return ErrOfferDeleteFailed
	}
	return nil
}

// Get fetches an offer
func (s *OfferService) Get(id uint) (*models.Offer, error) {
	if s == nil || s.repo == nil || id == 0 {
		return nil, ErrOfferInvalid
	}
	offer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrOfferFetchFailed
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	return offer, nil
}

// List fetches offers; OnlyLive additionally applies the validity window
// so expired offers drop out without a sweeper.
func (s *OfferService) List(input OfferListInput) ([]models.Offer, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, ErrOfferFetchFailed
	}
	filter := repository.OfferListFilter{
		Page:        input.Page,
		PageSize:    input.PageSize,
		ProviderID:  input.ProviderID,
		CategoryID:  input.CategoryID,
		OfferTypeID: input.OfferTypeID,
		Status:      strings.TrimSpace(strings.ToLower(input.Status)),
		Search:      strings.TrimSpace(input.Search),
		OnlyPublic:  input.OnlyPublic,
	}
	if input.OnlyLive {
		now := time.Now()
		filter.OnlyPublic = true
		filter.LiveAt = &now
	}
	offers, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, ErrOfferFetchFailed
	}
	return offers, total, nil
}

func (s *OfferService) validateSubmit(providerID uint, input SubmitOfferInput) error {
	ve := &ValidationError{}
	if providerID == 0 {
		ve.Add("provider_id", "provider is required")
	}
	if input.CategoryID == 0 {
		ve.Add("category_id", "category is required")
	} else if s.categoryRepo != nil {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return ErrOfferFetchFailed
		}
		if category == nil {
			ve.Add("category_id", "category not found")
		}
	}
	if input.OfferTypeID == 0 {
		ve.Add("offer_type_id", "offer type is required")
	} else if s.offerTypeRepo != nil {
		offerType, err := s.offerTypeRepo.GetByID(input.OfferTypeID)
		if err != nil {
			return ErrOfferFetchFailed
		}
		if offerType == nil {
			ve.Add("offer_type_id", "offer type not found")
		}
	}
	if strings.TrimSpace(input.TitleAr) == "" && strings.TrimSpace(input.TitleEn) == "" {
		ve.Add("title", "title is required")
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		ve.Add("ends_at", "window end precedes start")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// validateQuotaConfig tier caps may never promise more than the total cap.
// A cap of 0 disables the tier (or, for the total, the whole offer).
func validateQuotaConfig(maxUsage, silverMax, bronzeMax int) error {
	if maxUsage < 0 || silverMax < 0 || bronzeMax < 0 {
		return ErrQuotaConfigInvalid
	}
	if silverMax > maxUsage || bronzeMax > maxUsage {
		return ErrQuotaConfigInvalid
	}
	if silverMax+bronzeMax > maxUsage {
		return ErrQuotaConfigInvalid
	}
	return nil
}

func ensureOfferTransition(from, to string) error {
	for _, allowed := range allowedOfferTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return ErrOfferConflict
}

func applyOfferEdit(offer *models.Offer, input EditOfferInput) {
	if input.CategoryID != nil && *input.CategoryID != 0 {
		offer.CategoryID = *input.CategoryID
	}
	if input.OfferTypeID != nil && *input.OfferTypeID != 0 {
		offer.OfferTypeID = *input.OfferTypeID
	}
	if input.IsLimited != nil {
		offer.IsLimited = *input.IsLimited
	}
	if input.TitleAr != nil {
		offer.TitleAr = strings.TrimSpace(*input.TitleAr)
	}
	if input.TitleEn != nil {
		offer.TitleEn = strings.TrimSpace(*input.TitleEn)
	}
	if input.DetailsAr != nil {
		offer.DetailsAr = strings.TrimSpace(*input.DetailsAr)
	}
	if input.DetailsEn != nil {
		offer.DetailsEn = strings.TrimSpace(*input.DetailsEn)
	}
	if input.ImageURL != nil {
		offer.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Value1 != nil {
		offer.Value1 = *input.Value1
	}
	if input.Value2 != nil {
		offer.Value2 = *input.Value2
	}
	if input.MaxUsage != nil {
		offer.MaxUsage = *input.MaxUsage
	}
	if input.SilverMaxUsage != nil {
		offer.SilverMaxUsage = *input.SilverMaxUsage
	}
	if input.BronzeMaxUsage != nil {
		offer.BronzeMaxUsage = *input.BronzeMaxUsage
	}
	if input.ClearStartsAt {
		offer.StartsAt = nil
	} else if input.StartsAt != nil {
		offer.StartsAt = normalizeOfferTime(input.StartsAt)
	}
	if input.ClearEndsAt {
		offer.EndsAt = nil
	} else if input.EndsAt != nil {
		offer.EndsAt = normalizeOfferTime(input.EndsAt)
	}
	if input.GuestEligible != nil {
		offer.GuestEligible = *input.GuestEligible
	}
	if input.DeliveryEligible != nil {
		offer.DeliveryEligible = *input.DeliveryEligible
	}
}

func normalizeOfferTime(raw *time.Time) *time.Time {
	if raw == nil || raw.IsZero() {
		return nil
	}
	value := raw.UTC()
	return &value
}

func (s *OfferService) notifyStatus(offerID uint, status, reason string) {
	if s == nil || s.queueClient == nil {
		return
	}
	err := s.queueClient.EnqueueOfferStatusNotify(queue.OfferStatusNotifyPayload{
		OfferID: offerID,
		Status:  status,
		Reason:  reason,
	})
	if err != nil {
		logger.Warnw("offer_status_notify_enqueue_failed", "offer_id", offerID, "status", status, "error", err)
	}
}
