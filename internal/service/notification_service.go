package service

import (
	"time"

	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/repository"
)

// NotificationService notification inbox service
type NotificationService struct {
	repo repository.NotificationRepository
}

// NotificationListInput notification list input
type NotificationListInput struct {
	Page       int
	PageSize   int
	UserID     uint
	Type       string
	UnreadOnly bool
}

// NewNotificationService creates the notification service
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List fetches a user's notifications
func (s *NotificationService) List(input NotificationListInput) ([]models.Notification, int64, error) {
	if s == nil || s.repo == nil || input.UserID == 0 {
		return nil, 0, ErrNotificationNotFound
	}
	notifications, total, err := s.repo.List(repository.NotificationListFilter{
		Page:       input.Page,
		PageSize:   input.PageSize,
		UserID:     input.UserID,
		Type:       input.Type,
		UnreadOnly: input.UnreadOnly,
	})
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// MarkRead marks a notification read; ownership is enforced in the
// update predicate, a foreign id reads as not found.
func (s *NotificationService) MarkRead(id, userID uint) error {
	if s == nil || s.repo == nil || id == 0 || userID == 0 {
		return ErrNotificationNotFound
	}
	rows, err := s.repo.MarkRead(id, userID, time.Now())
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
