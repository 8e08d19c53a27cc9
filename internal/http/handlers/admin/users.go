package admin

import (
	"strconv"
	"time"

	"github.com/dealat-next/internal/constants"
	handlershared "github.com/dealat-next/internal/http/handlers/shared"
	"github.com/dealat-next/internal/http/response"
	"github.com/dealat-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListUsers lists accounts with role and provider filters
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	providerID, _ := strconv.Atoi(c.DefaultQuery("provider_id", "0"))

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:       page,
		PageSize:   pageSize,
		Role:       c.Query("role"),
		ProviderID: uint(providerID),
		Status:     c.Query("status"),
		Keyword:    c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}

	views := make([]gin.H, 0, len(users))
	for _, user := range users {
		views = append(views, gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"display_name":  user.DisplayName,
			"role":          user.Role,
			"provider_id":   user.ProviderID,
			"loyalty_tier":  user.LoyaltyTier,
			"status":        user.Status,
			"last_login_at": user.LastLoginAt,
			"created_at":    user.CreatedAt,
		})
	}
	response.SuccessWithPage(c, views, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetUser returns one account
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	user, err := h.UserRepo.GetByID(uint(id))
	if err != nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}
	response.Success(c, user)
}

// UpdateUserStatusRequest status flip request
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateUserStatus enables or disables an account. Disabling also cuts
// off outstanding tokens.
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.Status != constants.UserStatusActive && req.Status != constants.UserStatusDisabled {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	user, err := h.UserRepo.GetByID(uint(id))
	if err != nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}

	user.Status = req.Status
	if req.Status == constants.UserStatusDisabled {
		now := time.Now()
		user.TokenInvalidBefore = &now
	}
	if err := h.UserRepo.Update(user); err != nil {
		respondError(c, response.CodeInternal, "error.user_update_failed", err)
		return
	}
	response.Success(c, gin.H{"id": user.ID, "status": user.Status})
}

// RevokeUserTokens invalidates every token issued to the account so far
func (h *Handler) RevokeUserTokens(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	user, err := h.UserRepo.GetByID(uint(id))
	if err != nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}

	now := time.Now()
	user.TokenInvalidBefore = &now
	if err := h.UserRepo.Update(user); err != nil {
		respondError(c, response.CodeInternal, "error.user_update_failed", err)
		return
	}
	response.Success(c, gin.H{"revoked_at": now})
}
