package public

import (
	"github.com/dealat-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListCategories lists active categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.ReferenceService.ListCategories(true)
	if err != nil {
		respondError(c, response.CodeInternal, "error.reference_not_found", err)
		return
	}
	response.Success(c, categories)
}

// ListGovernorates lists active governorates
func (h *Handler) ListGovernorates(c *gin.Context) {
	governorates, err := h.ReferenceService.ListGovernorates(true)
	if err != nil {
		respondError(c, response.CodeInternal, "error.reference_not_found", err)
		return
	}
	response.Success(c, governorates)
}

// ListOfferTypes lists active offer types
func (h *Handler) ListOfferTypes(c *gin.Context) {
	offerTypes, err := h.ReferenceService.ListOfferTypes(true)
	if err != nil {
		respondError(c, response.CodeInternal, "error.reference_not_found", err)
		return
	}
	response.Success(c, offerTypes)
}
