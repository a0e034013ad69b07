// Package queue defines message payloads published to the message broker
// and the publisher that delivers them. Lifecycle events let downstream
// consumers (dashboards, analytics) react to reservations without querying
// the primary database.
package queue

// ReservationCreatedEvent is published after a reservation is persisted
// with pending status.
type ReservationCreatedEvent struct {
	ReservationID string   `json:"reservation_id"`
	Name          string   `json:"name"`
	Date          string   `json:"date"`
	StartHour     int      `json:"start_hour"`
	EndHour       int      `json:"end_hour"`
	Spaces        []string `json:"spaces"`
	CreatedAt     string   `json:"created_at"`
}

// ReservationDecidedEvent is published after an administrator decision has
// been committed to the store.
type ReservationDecidedEvent struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
	Suggestion    string `json:"suggestion,omitempty"`
	DecidedAt     string `json:"decided_at"`
}
