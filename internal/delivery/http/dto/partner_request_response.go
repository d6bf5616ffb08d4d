package dto

import (
	"time"

	"github.com/google/uuid"
)

type PartnerRequestResponse struct {
	ID          uuid.UUID  `json:"id"`
	FromUserID  uuid.UUID  `json:"from_user_id"`
	ToUserID    uuid.UUID  `json:"to_user_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}
