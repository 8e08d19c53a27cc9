package admin

import (
	"strconv"

	handlershared "github.com/dealat-next/internal/http/handlers/shared"
	"github.com/dealat-next/internal/http/response"
	"github.com/dealat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListRedemptions lists redemptions across all providers
func (h *Handler) ListRedemptions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	offerID, _ := strconv.Atoi(c.DefaultQuery("offer_id", "0"))
	providerID, _ := strconv.Atoi(c.DefaultQuery("provider_id", "0"))
	userID, _ := strconv.Atoi(c.DefaultQuery("user_id", "0"))

	redemptions, total, err := h.RedemptionService.List(service.RedemptionListInput{
		Page:       page,
		PageSize:   pageSize,
		OfferID:    uint(offerID),
		ProviderID: uint(providerID),
		UserID:     uint(userID),
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

// GetRedemption returns one redemption row
func (h *Handler) GetRedemption(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	redemption, err := h.RedemptionService.Get(uint(id))
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrRedemptionNotFound, code: response.CodeNotFound, key: "error.redemption_not_found"},
		}, response.CodeInternal, "error.redemption_fetch_failed")
		return
	}
	response.Success(c, redemption)
}
