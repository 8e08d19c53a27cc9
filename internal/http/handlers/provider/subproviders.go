package provider

import (
	"strconv"

	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/http/response"
	"github.com/dealat-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListSubProviders lists the provider's sub-provider staff accounts
func (h *Handler) ListSubProviders(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	users, _, err := h.UserRepo.List(repository.UserListFilter{
		ProviderID: actor.ProviderID,
		Role:       constants.RoleSubProvider,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}

	views := make([]gin.H, 0, len(users))
	for _, user := range users {
		views = append(views, gin.H{
			"id":           user.ID,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"status":       user.Status,
			"created_at":   user.CreatedAt,
		})
	}
	response.Success(c, views)
}

// LinkSubProviderRequest sub-provider link request
type LinkSubProviderRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// LinkSubProvider elevates a user to sub-provider of the actor's provider
func (h *Handler) LinkSubProvider(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req LinkSubProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AssignmentService.LinkSubProvider(actor, actor.ProviderID, req.UserID); err != nil {
		respondWithMappedError(c, err, assignmentErrorRules, response.CodeInternal, "error.assignment_sync_failed")
		return
	}
	response.Success(c, gin.H{"linked": true})
}

// UnlinkSubProvider demotes a sub-provider back to a base user
func (h *Handler) UnlinkSubProvider(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.AssignmentService.UnlinkSubProvider(actor, actor.ProviderID, uint(userID)); err != nil {
		respondWithMappedError(c, err, assignmentErrorRules, response.CodeInternal, "error.assignment_sync_failed")
		return
	}
	response.Success(c, gin.H{"unlinked": true})
}
