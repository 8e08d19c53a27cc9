package queue

import (
	"encoding/json"

	"github.com/dealat-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOfferStatusNotify offer lifecycle notification task
	TaskOfferStatusNotify = constants.TaskOfferStatusNotify
)

// OfferStatusNotifyPayload offer lifecycle notification payload
type OfferStatusNotifyPayload struct {
	OfferID uint   `json:"offer_id"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
}

// NewOfferStatusNotifyTask creates an offer status notification task
func NewOfferStatusNotifyTask(payload OfferStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOfferStatusNotify, body), nil
}
