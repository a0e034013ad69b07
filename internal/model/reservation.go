package model

import (
	"fmt"
	"time"
)

// Reservation lifecycle statuses. A reservation starts as pending and is
// moved exactly once by an administrator decision to approved or denied.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

// ValidStatus reports whether s is one of the three lifecycle statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusDenied
}

// ValidDecision reports whether s is a terminal status an administrator may
// set. Pending is the initial state only and is never a decision target.
func ValidDecision(s string) bool {
	return s == StatusApproved || s == StatusDenied
}

// Reservation is a request to occupy one or more named spaces for a date and
// hour range, as stored in the `reservations` table. The json tags follow
// the field names used by the frontend (nom, etablissement, telephone).
//
// Fields:
//  ID          – store-assigned UUID, immutable once created.
//  Name        – requester name.
//  Institution – requester's institution (optional).
//  Phone       – contact phone (optional).
//  Email       – contact email, target of lifecycle notifications.
//  Date        – requested calendar date as an opaque string (no TZ semantics).
//  StartHour   – first occupied hour, integer in [0,24].
//  EndHour     – hour the occupation ends, integer in [0,24], > StartHour.
//  Spaces      – non-empty set of requested space identifiers.
//  Note        – free-text note from the requester (optional).
//  Status      – lifecycle status (pending, approved, denied).
//  Suggestion  – administrator suggestion attached to a denial (optional).
//  CreatedAt   – server-assigned creation timestamp, never mutated.
type Reservation struct {
	ID          string    `json:"id"`
	Name        string    `json:"nom"`
	Institution string    `json:"etablissement,omitempty"`
	Phone       string    `json:"telephone,omitempty"`
	Email       string    `json:"email"`
	Date        string    `json:"date"`
	StartHour   int       `json:"startHour"`
	EndHour     int       `json:"endHour"`
	Spaces      []string  `json:"spaces"`
	Note        string    `json:"note,omitempty"`
	Status      string    `json:"status"`
	Suggestion  string    `json:"suggestion,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Slot is the public availability projection of an approved reservation.
// Only occupancy fields are exposed; contact details never leave the admin
// channel. No overlap merging is performed here: conflict resolution is a
// presentation concern for the consumer.
//
// Fields:
//  ID        – reservation identifier.
//  Date      – occupied calendar date.
//  StartHour – first occupied hour.
//  EndHour   – hour the occupation ends.
//  Spaces    – occupied space identifiers.
//  Status    – lifecycle status, always approved on this channel.
type Slot struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	StartHour int      `json:"startHour"`
	EndHour   int      `json:"endHour"`
	Spaces    []string `json:"spaces"`
	Status    string   `json:"status"`
}

// Slot returns the availability projection of the reservation.
func (r *Reservation) Slot() Slot {
	return Slot{
		ID:        r.ID,
		Date:      r.Date,
		StartHour: r.StartHour,
		EndHour:   r.EndHour,
		Spaces:    r.Spaces,
		Status:    r.Status,
	}
}

// FormatHour renders an hour for human display. The end-of-day sentinel 24
// renders as midnight. This is a display transform only; ordering and
// comparisons always operate on the raw integer.
func FormatHour(h int) string {
	if h == 24 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:00", h)
}
