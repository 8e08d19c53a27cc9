package admin

import (
	"strconv"
	"time"

	handlershared "github.com/dealat-next/internal/http/handlers/shared"
	"github.com/dealat-next/internal/http/response"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOfferRequest admin offer creation request. Public goes straight
// live without the approval gate.
type CreateOfferRequest struct {
	ProviderID       uint          `json:"provider_id" binding:"required"`
	CategoryID       uint          `json:"category_id" binding:"required"`
	OfferTypeID      uint          `json:"offer_type_id" binding:"required"`
	IsLimited        bool          `json:"is_limited"`
	TitleAr          string        `json:"title_ar"`
	TitleEn          string        `json:"title_en"`
	DetailsAr        string        `json:"details_ar"`
	DetailsEn        string        `json:"details_en"`
	ImageURL         string        `json:"image_url"`
	Value1           models.Amount `json:"value1"`
	Value2           models.Amount `json:"value2"`
	MaxUsage         int           `json:"max_usage"`
	SilverMaxUsage   int           `json:"silver_max_usage"`
	BronzeMaxUsage   int           `json:"bronze_max_usage"`
	StartsAt         *time.Time    `json:"starts_at"`
	EndsAt           *time.Time    `json:"ends_at"`
	GuestEligible    bool          `json:"guest_eligible"`
	DeliveryEligible bool          `json:"delivery_eligible"`
	Public           bool          `json:"public"`
}

// CreateOffer creates an offer on behalf of a provider
func (h *Handler) CreateOffer(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	offer, err := h.OfferService.Submit(actor, service.SubmitOfferInput{
		ProviderID:       req.ProviderID,
		CategoryID:       req.CategoryID,
		OfferTypeID:      req.OfferTypeID,
		IsLimited:        req.IsLimited,
		TitleAr:          req.TitleAr,
		TitleEn:          req.TitleEn,
		DetailsAr:        req.DetailsAr,
		DetailsEn:        req.DetailsEn,
		ImageURL:         req.ImageURL,
		Value1:           req.Value1,
		Value2:           req.Value2,
		MaxUsage:         req.MaxUsage,
		SilverMaxUsage:   req.SilverMaxUsage,
		BronzeMaxUsage:   req.BronzeMaxUsage,
		StartsAt:         req.StartsAt,
		EndsAt:           req.EndsAt,
		GuestEligible:    req.GuestEligible,
		DeliveryEligible: req.DeliveryEligible,
		Public:           req.Public,
	})
	if err != nil {
		respondWithMappedError(c, err, offerAdminErrorRules, response.CodeInternal, "error.offer_create_failed")
		return
	}
	response.Success(c, offer)
}

// ListOffers lists offers across all providers and states
func (h *Handler) ListOffers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	providerID, _ := strconv.Atoi(c.DefaultQuery("provider_id", "0"))
	categoryID, _ := strconv.Atoi(c.DefaultQuery("category_id", "0"))

	offers, total, err := h.OfferService.List(service.OfferListInput{
		Page:       page,
		PageSize:   pageSize,
		ProviderID: uint(providerID),
		CategoryID: uint(categoryID),
		Status:     c.Query("status"),
		Search:     c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.offer_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, offers, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetOffer returns an offer with its quota snapshot
func (h *Handler) GetOffer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	offer, err := h.OfferService.Get(uint(id))
	if err != nil {
		respondWithMappedError(c, err, offerAdminErrorRules, response.CodeInternal, "error.offer_fetch_failed")
		return
	}
	snapshot, err := h.QuotaService.Snapshot(offer.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.offer_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"offer": offer,
		"quota": snapshot,
	})
}

// ApproveOffer moves a pending offer live
func (h *Handler) ApproveOffer(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	offer, err := h.OfferService.Approve(actor, uint(id))
	if err != nil {
		respondWithMappedError(c, err, offerAdminErrorRules, response.CodeInternal, "error.offer_update_failed")
		return
	}
	response.Success(c, offer)
}

// RejectOfferRequest rejection request
type RejectOfferRequest struct {
	Reason string `json:"reason"`
}

// RejectOffer rejects a pending offer
func (h *Handler) RejectOffer(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	// Body is optional; a bare reject carries no reason.
	var req RejectOfferRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.OfferService.Reject(actor, uint(id), req.Reason); err != nil {
		respondWithMappedError(c, err, offerAdminErrorRules, response.CodeInternal, "error.offer_update_failed")
		return
	}
	response.Success(c, gin.H{"rejected": true})
}

// EditOfferRequest admin edit request; admin edits keep the offer state
type EditOfferRequest struct {
	CategoryID       *uint          `json:"category_id"`
	OfferTypeID      *uint          `json:"offer_type_id"`
	IsLimited        *bool          `json:"is_limited"`
	TitleAr          *string        `json:"title_ar"`
	TitleEn          *string        `json:"title_en"`
	DetailsAr        *string        `json:"details_ar"`
	DetailsEn        *string        `json:"details_en"`
	ImageURL         *string        `json:"image_url"`
	Value1           *models.Amount `json:"value1"`
	Value2           *models.Amount `json:"value2"`
	MaxUsage         *int           `json:"max_usage"`
	SilverMaxUsage   *int           `json:"silver_max_usage"`
	BronzeMaxUsage   *int           `json:"bronze_max_usage"`
	StartsAt         *time.Time     `json:"starts_at"`
	ClearStartsAt    bool           `json:"clear_starts_at"`
	EndsAt           *time.Time     `json:"ends_at"`
	ClearEndsAt      bool           `json:"clear_ends_at"`
	GuestEligible    *bool          `json:"guest_eligible"`
	DeliveryEligible *bool          `json:"delivery_eligible"`
	Public           *bool          `json:"public"`
}

// EditOffer edits any offer without re-gating it
func (h *Handler) EditOffer(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req EditOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	offer, err := h.OfferService.Edit(actor, uint(id), service.EditOfferInput{
		CategoryID:       req.CategoryID,
		OfferTypeID:      req.OfferTypeID,
		IsLimited:        req.IsLimited,
		TitleAr:          req.TitleAr,
		TitleEn:          req.TitleEn,
		DetailsAr:        req.DetailsAr,
		DetailsEn:        req.DetailsEn,
		ImageURL:         req.ImageURL,
		Value1:           req.Value1,
		Value2:           req.Value2,
		MaxUsage:         req.MaxUsage,
		SilverMaxUsage:   req.SilverMaxUsage,
		BronzeMaxUsage:   req.BronzeMaxUsage,
		StartsAt:         req.StartsAt,
		ClearStartsAt:    req.ClearStartsAt,
		EndsAt:           req.EndsAt,
		ClearEndsAt:      req.ClearEndsAt,
		GuestEligible:    req.GuestEligible,
		DeliveryEligible: req.DeliveryEligible,
		Public:           req.Public,
	})
	if err != nil {
		respondWithMappedError(c, err, offerAdminErrorRules, response.CodeInternal, "error.offer_update_failed")
		return
	}
	response.Success(c, offer)
}

// DeleteOffer removes a non-public offer
func (h *Handler) DeleteOffer(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.OfferService.Delete(actor, uint(id)); err != nil {
		respondWithMappedError(c, err, offerAdminErrorRules, response.CodeInternal, "error.offer_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
