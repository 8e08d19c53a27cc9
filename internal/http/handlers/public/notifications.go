package public

import (
	"errors"
	"strconv"

	handlershared "github.com/dealat-next/internal/http/handlers/shared"
	"github.com/dealat-next/internal/http/response"
	"github.com/dealat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListNotifications lists the current user's notifications
func (h *Handler) ListNotifications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	unreadOnly := c.DefaultQuery("unread_only", "false") == "true"

	notifications, total, err := h.NotificationService.List(service.NotificationListInput{
		Page:       page,
		PageSize:   pageSize,
		UserID:     userID,
		Type:       c.Query("type"),
		UnreadOnly: unreadOnly,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.notification_not_found", err)
		return
	}

	response.SuccessWithPage(c, notifications, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// MarkNotificationRead marks one of the current user's notifications read
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.NotificationService.MarkRead(uint(id), userID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			respondError(c, response.CodeNotFound, "error.notification_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	response.Success(c, gin.H{"read": true})
}
