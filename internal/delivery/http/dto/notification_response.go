package dto

import "time"

type NotificationPayloadResponse struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type NotificationResponse struct {
	Recipient string                      `json:"recipient"`
	Success   bool                        `json:"success"`
	Error     string                      `json:"error,omitempty"`
	Payload   NotificationPayloadResponse `json:"payload"`
	Timestamp time.Time                   `json:"timestamp"`
}
