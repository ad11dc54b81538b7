package models

import "time"

// Account event types published to Kafka.
const (
	EventUserRegistered = "user.registered"
	EventUserUpdated    = "user.updated"
)

// UserEvent is the JSON payload published to the user-events topic
// after a successful registration or profile update.
type UserEvent struct {
	EventID    string    `json:"event_id"`   // Unique event id
	Type       string    `json:"type"`       // EventUserRegistered or EventUserUpdated
	UserID     string    `json:"user_id"`    // Hex document id
	Username   string    `json:"username"`   // Username after the operation
	Email      string    `json:"email"`      // Email after the operation
	OccurredAt time.Time `json:"occurred_at"`
}
