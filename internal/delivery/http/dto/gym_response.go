package dto

import (
	"time"

	"github.com/google/uuid"
)

type GymResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	City      string     `json:"city"`
	URL       string     `json:"url,omitempty"`
	Source    string     `json:"source,omitempty"`
	ScrapedAt *time.Time `json:"scraped_at,omitempty"`
}
