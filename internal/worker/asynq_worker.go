package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/di"
	"github.com/dealat-next/internal/logger"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/queue"
	"github.com/dealat-next/internal/repository"

	"github.com/hibiken/asynq"
)

// Consumer async task consumer
type Consumer struct {
	*di.Container
}

// NewConsumer creates the consumer
func NewConsumer(c *di.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register registers the consumer handlers
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOfferStatusNotify, c.handleOfferStatusNotify)
}

// handleOfferStatusNotify fans an offer lifecycle change out to the
// provider's staff as notification rows. Delivery channels read those
// rows, the worker never talks to a push gateway itself.
func (c *Consumer) handleOfferStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_offer_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OfferStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_offer_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OfferID == 0 {
		logger.Debugw("worker_offer_status_notify_skip_invalid_payload", "offer_id", payload.OfferID)
		return nil
	}

	offer, err := c.OfferRepo.GetByID(payload.OfferID)
	if err != nil {
		logger.Warnw("worker_offer_status_notify_fetch_offer_failed", "offer_id", payload.OfferID, "error", err)
		return err
	}
	if offer == nil {
		// Rejected offers without redemptions are hard-deleted before the
		// task runs; nothing left to notify about.
		logger.Debugw("worker_offer_status_notify_skip_offer_not_found", "offer_id", payload.OfferID)
		return nil
	}

	notifyType, title, body := buildOfferStatusNotification(offer, payload.Status, payload.Reason)
	if notifyType == "" {
		logger.Debugw("worker_offer_status_notify_skip_unknown_status", "offer_id", offer.ID, "status", payload.Status)
		return nil
	}

	recipients, err := c.listProviderStaff(offer.ProviderID)
	if err != nil {
		logger.Warnw("worker_offer_status_notify_fetch_staff_failed", "offer_id", offer.ID, "provider_id", offer.ProviderID, "error", err)
		return err
	}
	if len(recipients) == 0 {
		logger.Debugw("worker_offer_status_notify_skip_no_recipients", "offer_id", offer.ID, "provider_id", offer.ProviderID)
		return nil
	}

	detail := models.JSON{
		"offer_id": offer.ID,
		"status":   payload.Status,
		"reason":   payload.Reason,
	}

	for _, user := range recipients {
		notification := &models.Notification{
			UserID:  user.ID,
			Type:    notifyType,
			Title:   title,
			Body:    body,
			Payload: detail,
		}
		if err := c.NotificationRepo.Create(notification); err != nil {
			logger.Warnw("worker_offer_status_notify_create_failed",
				"offer_id", offer.ID,
				"user_id", user.ID,
				"type", notifyType,
				"error", err,
			)
			return err
		}
	}
	return nil
}

func (c *Consumer) listProviderStaff(providerID uint) ([]models.User, error) {
	if providerID == 0 {
		return nil, nil
	}
	staff := make([]models.User, 0)
	for _, role := range []string{constants.RoleProvider, constants.RoleSubProvider} {
		users, _, err := c.UserRepo.List(repository.UserListFilter{
			ProviderID: providerID,
			Role:       role,
		})
		if err != nil {
			return nil, err
		}
		staff = append(staff, users...)
	}
	return staff, nil
}

func buildOfferStatusNotification(offer *models.Offer, status, reason string) (notifyType, title, body string) {
	if offer == nil {
		return "", "", ""
	}
	name := strings.TrimSpace(offer.TitleEn)
	if name == "" {
		name = strings.TrimSpace(offer.TitleAr)
	}
	switch strings.TrimSpace(status) {
	case constants.OfferStatusLive:
		title = "Offer approved"
		body = fmt.Sprintf("Your offer %q is now live.", name)
		return constants.NotificationOfferApproved, title, body
	case constants.OfferStatusRejected:
		title = "Offer rejected"
		body = fmt.Sprintf("Your offer %q was rejected.", name)
		if trimmed := strings.TrimSpace(reason); trimmed != "" {
			body = fmt.Sprintf("%s Reason: %s", body, trimmed)
		}
		return constants.NotificationOfferRejected, title, body
	default:
		return "", "", ""
	}
}
