package admin

import (
	"strconv"

	handlershared "github.com/dealat-next/internal/http/handlers/shared"
	"github.com/dealat-next/internal/http/response"
	"github.com/dealat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProviderRequest merchant creation request. Owner is optional;
// when present a provider staff account is created in the same transaction.
type CreateProviderRequest struct {
	NameAr   string `json:"name_ar"`
	NameEn   string `json:"name_en"`
	LogoURL  string `json:"logo_url"`
	IsActive *bool  `json:"is_active"`
	Owner    *struct {
		Email       string `json:"email" binding:"required"`
		Password    string `json:"password" binding:"required"`
		DisplayName string `json:"display_name"`
	} `json:"owner"`
}

// CreateProvider registers a merchant
func (h *Handler) CreateProvider(c *gin.Context) {
	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	var owner *service.ProviderOwnerInput
	if req.Owner != nil {
		owner = &service.ProviderOwnerInput{
			Email:       req.Owner.Email,
			Password:    req.Owner.Password,
			DisplayName: req.Owner.DisplayName,
		}
	}

	provider, err := h.ProviderService.Create(service.ProviderInput{
		NameAr:   req.NameAr,
		NameEn:   req.NameEn,
		LogoURL:  req.LogoURL,
		IsActive: req.IsActive,
	}, owner)
	if err != nil {
		respondWithMappedError(c, err, providerAdminErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, provider)
}

// UpdateProviderRequest merchant update request
type UpdateProviderRequest struct {
	NameAr   string `json:"name_ar"`
	NameEn   string `json:"name_en"`
	LogoURL  string `json:"logo_url"`
	IsActive *bool  `json:"is_active"`
}

// UpdateProvider updates a merchant profile
func (h *Handler) UpdateProvider(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	provider, err := h.ProviderService.Update(uint(id), service.ProviderInput{
		NameAr:   req.NameAr,
		NameEn:   req.NameEn,
		LogoURL:  req.LogoURL,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondWithMappedError(c, err, providerAdminErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, provider)
}

// GetProvider returns a merchant by id
func (h *Handler) GetProvider(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	provider, err := h.ProviderService.Get(uint(id))
	if err != nil {
		respondWithMappedError(c, err, providerAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, provider)
}

// ListProviders lists merchants
func (h *Handler) ListProviders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	providers, total, err := h.ProviderService.List(service.ProviderListInput{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, providers, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}
