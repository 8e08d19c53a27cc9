package public

import (
	"errors"
	"strconv"

	handlershared "github.com/dealat-next/internal/http/handlers/shared"
	"github.com/dealat-next/internal/http/response"
	"github.com/dealat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateRedemptionRequest scan request
type CreateRedemptionRequest struct {
	OfferID uint `json:"offer_id" binding:"required"`
}

var redemptionCreateErrorRules = []mappedHandlerError{
	{target: service.ErrOfferNotFound, code: response.CodeNotFound, key: "error.offer_not_found"},
	{target: service.ErrOfferNotLive, code: response.CodeBadRequest, key: "error.offer_not_live"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrRedemptionInvalid, code: response.CodeBadRequest, key: "error.redemption_invalid"},
}

// CreateRedemption records a scan of a live offer for the current user
func (h *Handler) CreateRedemption(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	redemption, qrImage, err := h.RedemptionService.Create(req.OfferID, userID)
	if err != nil {
		respondWithMappedError(c, err, redemptionCreateErrorRules, response.CodeInternal, "error.redemption_create_failed")
		return
	}

	response.Success(c, gin.H{
		"redemption":      redemption,
		"qr_image_base64": qrImage,
	})
}

// ListMyRedemptions lists the current user's redemptions
func (h *Handler) ListMyRedemptions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	redemptions, total, err := h.RedemptionService.List(service.RedemptionListInput{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   c.Query("status"),
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

// GetMyRedemption returns one of the current user's redemptions
func (h *Handler) GetMyRedemption(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	redemption, err := h.RedemptionService.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrRedemptionNotFound) {
			respondError(c, response.CodeNotFound, "error.redemption_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.redemption_fetch_failed", err)
		return
	}
	if redemption.UserID != userID {
		// A foreign redemption reads as absent.
		respondError(c, response.CodeNotFound, "error.redemption_not_found", nil)
		return
	}
	response.Success(c, redemption)
}
