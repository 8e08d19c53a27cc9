package provider

import (
	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SyncAssignmentsRequest full-replacement assignment request
type SyncAssignmentsRequest struct {
	Relation  string `json:"relation" binding:"required"`
	TargetIDs []uint `json:"target_ids"`
}

// SyncAssignments replaces the provider's category or governorate links
func (h *Handler) SyncAssignments(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req SyncAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	targets, err := h.AssignmentService.Sync(actor, actor.ProviderID, req.Relation, req.TargetIDs)
	if err != nil {
		respondWithMappedError(c, err, assignmentErrorRules, response.CodeInternal, "error.assignment_sync_failed")
		return
	}
	response.Success(c, gin.H{
		"relation":   req.Relation,
		"target_ids": targets,
	})
}

// ListAssignments lists the provider's current relation targets
func (h *Handler) ListAssignments(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	relation := c.DefaultQuery("relation", constants.RelationCategory)
	targets, err := h.AssignmentService.ListTargets(actor.ProviderID, relation)
	if err != nil {
		respondWithMappedError(c, err, assignmentErrorRules, response.CodeInternal, "error.assignment_sync_failed")
		return
	}
	response.Success(c, gin.H{
		"relation":   relation,
		"target_ids": targets,
	})
}
