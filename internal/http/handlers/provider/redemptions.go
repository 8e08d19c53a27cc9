package provider

import (
	"strconv"

	"github.com/dealat-next/internal/constants"
	handlershared "github.com/dealat-next/internal/http/handlers/shared"
	"github.com/dealat-next/internal/http/response"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListRedemptions lists redemptions against the actor's provider offers
func (h *Handler) ListRedemptions(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	offerID, _ := strconv.Atoi(c.DefaultQuery("offer_id", "0"))

	redemptions, total, err := h.RedemptionService.List(service.RedemptionListInput{
		Page:       page,
		PageSize:   pageSize,
		OfferID:    uint(offerID),
		ProviderID: actor.ProviderID,
		Status:     c.Query("status"),
		Tier:       c.Query("tier"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.redemption_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, redemptions, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetRedemption resolves a redemption by id, or by scan code via ?code=.
// The staff device scans a QR and looks the row up before settling.
func (h *Handler) GetRedemption(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var redemption *models.Redemption
	var err error
	if code := c.Query("code"); code != "" {
		redemption, err = h.RedemptionService.GetByCode(code)
	} else {
		id, convErr := strconv.Atoi(c.Param("id"))
		if convErr != nil || id <= 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		redemption, err = h.RedemptionService.Get(uint(id))
	}
	if err != nil {
		respondWithMappedError(c, err, settleErrorRules, response.CodeInternal, "error.redemption_fetch_failed")
		return
	}

	offer, err := h.OfferService.Get(redemption.OfferID)
	if err != nil {
		respondWithMappedError(c, err, settleErrorRules, response.CodeInternal, "error.redemption_fetch_failed")
		return
	}
	if actor.Role != constants.RoleAdmin && offer.ProviderID != actor.ProviderID {
		// Another provider's redemption reads as absent.
		respondError(c, response.CodeNotFound, "error.redemption_not_found", nil)
		return
	}

	response.Success(c, gin.H{
		"redemption": redemption,
		"offer":      offer,
	})
}

// SettleRequest settlement request
type SettleRequest struct {
	Outcome string `json:"outcome" binding:"required"`
}

// SettleRedemption settles a pending redemption as completed or rejected
func (h *Handler) SettleRedemption(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	redemption, err := h.RedemptionService.Settle(actor, uint(id), req.Outcome)
	if err != nil {
		respondWithMappedError(c, err, settleErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, redemption)
}
