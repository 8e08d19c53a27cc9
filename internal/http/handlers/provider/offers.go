package provider

import (
	"strconv"
	"time"

	handlershared "github.com/dealat-next/internal/http/handlers/shared"
	"github.com/dealat-next/internal/http/response"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitOfferRequest offer submission request
type SubmitOfferRequest struct {
	CategoryID       uint           `json:"category_id" binding:"required"`
	OfferTypeID      uint           `json:"offer_type_id" binding:"required"`
	IsLimited        bool           `json:"is_limited"`
	TitleAr          string         `json:"title_ar"`
	TitleEn          string         `json:"title_en"`
	DetailsAr        string         `json:"details_ar"`
	DetailsEn        string         `json:"details_en"`
	ImageURL         string         `json:"image_url"`
	Value1           models.Amount  `json:"value1"`
	Value2           models.Amount  `json:"value2"`
	MaxUsage         int            `json:"max_usage"`
	SilverMaxUsage   int            `json:"silver_max_usage"`
	BronzeMaxUsage   int            `json:"bronze_max_usage"`
	StartsAt         *time.Time     `json:"starts_at"`
	EndsAt           *time.Time     `json:"ends_at"`
	GuestEligible    bool           `json:"guest_eligible"`
	DeliveryEligible bool           `json:"delivery_eligible"`
}

// SubmitOffer submits a new offer into the approval gate
func (h *Handler) SubmitOffer(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req SubmitOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	offer, err := h.OfferService.Submit(actor, service.SubmitOfferInput{
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
	})
	if err != nil {
		respondWithMappedError(c, err, offerWriteErrorRules, response.CodeInternal, "error.offer_create_failed")
		return
	}
	response.Success(c, offer)
}

// EditOfferRequest partial offer edit request
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
}

func (req *EditOfferRequest) toInput() service.EditOfferInput {
	return service.EditOfferInput{
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
	}
}

// EditOffer edits an offer; provider edits re-enter the approval gate
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

	offer, err := h.OfferService.Edit(actor, uint(id), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, offerWriteErrorRules, response.CodeInternal, "error.offer_update_failed")
		return
	}
	response.Success(c, offer)
}

// DeleteOffer removes a non-public offer owned by the actor's provider
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
		respondWithMappedError(c, err, offerWriteErrorRules, response.CodeInternal, "error.offer_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListOffers lists the actor's provider offers across all states
func (h *Handler) ListOffers(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	offers, total, err := h.OfferService.List(service.OfferListInput{
		Page:       page,
		PageSize:   pageSize,
		ProviderID: actor.ProviderID,
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

// GetOffer returns one of the actor's provider offers with its quota
func (h *Handler) GetOffer(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	offer, err := h.OfferService.Get(uint(id))
	if err != nil {
		respondWithMappedError(c, err, offerWriteErrorRules, response.CodeInternal, "error.offer_fetch_failed")
		return
	}
	if offer.ProviderID != actor.ProviderID {
		respondError(c, response.CodeNotFound, "error.offer_not_found", nil)
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
