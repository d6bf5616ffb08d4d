package dto

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleBlockResponse struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type ProfileResponse struct {
	UserID         uuid.UUID               `json:"user_id"`
	DisplayName    string                  `json:"display_name"`
	Gym            string                  `json:"gym"`
	Split          string                  `json:"split"`
	Goals          []string                `json:"goals"`
	Level          string                  `json:"level"`
	ScheduleBlocks []ScheduleBlockResponse `json:"schedule_blocks"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

type CompletenessResponse struct {
	Complete bool   `json:"complete"`
	Reason   string `json:"reason,omitempty"`
}
