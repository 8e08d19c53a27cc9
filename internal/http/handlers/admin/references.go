package admin

import (
	"strconv"

	"github.com/dealat-next/internal/http/response"
	"github.com/dealat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ReferenceRequest shared create/update body for reference rows
type ReferenceRequest struct {
	NameAr   string `json:"name_ar"`
	NameEn   string `json:"name_en"`
	IconURL  string `json:"icon_url"`
	IsActive *bool  `json:"is_active"`
}

func (req *ReferenceRequest) toInput() service.ReferenceInput {
	return service.ReferenceInput{
		NameAr:   req.NameAr,
		NameEn:   req.NameEn,
		IconURL:  req.IconURL,
		IsActive: req.IsActive,
	}
}

func bindReferenceRequest(c *gin.Context) (*ReferenceRequest, bool) {
	var req ReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return nil, false
	}
	return &req, true
}

func referenceID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

// ListCategories lists all categories, inactive included
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.ReferenceService.ListCategories(false)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory creates a category
func (h *Handler) CreateCategory(c *gin.Context) {
	req, ok := bindReferenceRequest(c)
	if !ok {
		return
	}
	category, err := h.ReferenceService.CreateCategory(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, referenceAdminErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory updates a category
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := referenceID(c)
	if !ok {
		return
	}
	req, ok := bindReferenceRequest(c)
	if !ok {
		return
	}
	category, err := h.ReferenceService.UpdateCategory(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, referenceAdminErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category unless offers still reference it
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := referenceID(c)
	if !ok {
		return
	}
	if err := h.ReferenceService.DeleteCategory(id); err != nil {
		respondWithMappedError(c, err, referenceAdminErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListGovernorates lists all governorates
func (h *Handler) ListGovernorates(c *gin.Context) {
	governorates, err := h.ReferenceService.ListGovernorates(false)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, governorates)
}

// CreateGovernorate creates a governorate
func (h *Handler) CreateGovernorate(c *gin.Context) {
	req, ok := bindReferenceRequest(c)
	if !ok {
		return
	}
	governorate, err := h.ReferenceService.CreateGovernorate(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, referenceAdminErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, governorate)
}

// UpdateGovernorate updates a governorate
func (h *Handler) UpdateGovernorate(c *gin.Context) {
	id, ok := referenceID(c)
	if !ok {
		return
	}
	req, ok := bindReferenceRequest(c)
	if !ok {
		return
	}
	governorate, err := h.ReferenceService.UpdateGovernorate(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, referenceAdminErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, governorate)
}

// ListOfferTypes lists all offer types
func (h *Handler) ListOfferTypes(c *gin.Context) {
	offerTypes, err := h.ReferenceService.ListOfferTypes(false)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, offerTypes)
}

// CreateOfferType creates an offer type
func (h *Handler) CreateOfferType(c *gin.Context) {
	req, ok := bindReferenceRequest(c)
	if !ok {
		return
	}
	offerType, err := h.ReferenceService.CreateOfferType(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, referenceAdminErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, offerType)
}

// UpdateOfferType updates an offer type
func (h *Handler) UpdateOfferType(c *gin.Context) {
	id, ok := referenceID(c)
	if !ok {
		return
	}
	req, ok := bindReferenceRequest(c)
	if !ok {
		return
	}
	offerType, err := h.ReferenceService.UpdateOfferType(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, referenceAdminErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, offerType)
}
