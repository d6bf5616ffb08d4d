package dto

import "github.com/google/uuid"

type FactorsResponse struct {
	Schedule float64 `json:"schedule"`
	Split    float64 `json:"split"`
	Goals    float64 `json:"goals"`
	Level    float64 `json:"level"`
	Gym      float64 `json:"gym"`
}

type CompatibilityResponse struct {
	PartnerID uuid.UUID       `json:"partner_id"`
	Score     int             `json:"score"`
	Factors   FactorsResponse `json:"factors"`
	Cached    bool            `json:"cached"`
}

type SuggestionResponse struct {
	PartnerID   uuid.UUID       `json:"partner_id"`
	DisplayName string          `json:"display_name"`
	Gym         string          `json:"gym"`
	Score       int             `json:"score"`
	Factors     FactorsResponse `json:"factors"`
}
