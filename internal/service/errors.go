// Package service contains the reservation lifecycle controller and the
// admin account service. This file defines the error taxonomy surfaced by
// lifecycle operations; handlers map each sentinel to a distinct HTTP
// status. Notification failures are deliberately absent: they are logged
// warnings, never operation failures.
package service

import "errors"

// ErrSecurityCheckMissing is returned when a reservation request carries no
// verification token. The gate is not called in this case.
var ErrSecurityCheckMissing = errors.New("security check required")

// ErrSecurityCheckFailed is returned when the bot-verification gate rejects
// the token, including when the verification call itself fails (the gate is
// fail-closed).
var ErrSecurityCheckFailed = errors.New("security check failed")

// ErrValidation is returned when required fields are missing or malformed,
// or when a decision targets a status outside {approved, denied}.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when a decision targets an unknown reservation,
// or one that disappeared between lookup and update.
var ErrNotFound = errors.New("reservation not found")

// ErrStoreUnavailable is returned on transient persistence failures. No
// notification is dispatched when the store write did not commit.
var ErrStoreUnavailable = errors.New("store unavailable")
