package public

import (
	"errors"
	"strconv"
	"time"

	"github.com/dealat-next/internal/constants"
	handlershared "github.com/dealat-next/internal/http/handlers/shared"
	"github.com/dealat-next/internal/http/response"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// PublicOfferView offer response with the derived lifecycle state
type PublicOfferView struct {
	models.Offer
	EffectiveStatus string `json:"effective_status"`
}

// ListOffers lists effectively live public offers
func (h *Handler) ListOffers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	providerID, _ := strconv.Atoi(c.DefaultQuery("provider_id", "0"))
	categoryID, _ := strconv.Atoi(c.DefaultQuery("category_id", "0"))
	offerTypeID, _ := strconv.Atoi(c.DefaultQuery("offer_type_id", "0"))

	offers, total, err := h.OfferService.List(service.OfferListInput{
		Page:        page,
		PageSize:    pageSize,
		ProviderID:  uint(providerID),
		CategoryID:  uint(categoryID),
		OfferTypeID: uint(offerTypeID),
		Search:      c.Query("search"),
		OnlyLive:    true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.offer_fetch_failed", err)
		return
	}

	now := time.Now()
	views := make([]PublicOfferView, 0, len(offers))
	for _, offer := range offers {
		views = append(views, PublicOfferView{Offer: offer, EffectiveStatus: offer.EffectiveState(now)})
	}
	response.SuccessWithPage(c, views, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetOffer returns one public offer with its remaining quota
func (h *Handler) GetOffer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	offer, err := h.OfferService.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOfferNotFound) {
			respondError(c, response.CodeNotFound, "error.offer_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.offer_fetch_failed", err)
		return
	}

	// Hidden and unapproved offers do not exist for the public surface.
	// Expired ones stay visible with their derived state.
	now := time.Now()
	if !offer.IsPublic || offer.Status != constants.OfferStatusLive {
		respondError(c, response.CodeNotFound, "error.offer_not_found", nil)
		return
	}

	snapshot, err := h.QuotaService.Snapshot(offer.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.offer_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"offer":      PublicOfferView{Offer: *offer, EffectiveStatus: offer.EffectiveState(now)},
		"quota":      snapshot,
		"redeemable": offer.IsRedeemable(now),
	})
}
