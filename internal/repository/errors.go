// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// lifecycle service to distinguish between different failure scenarios
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrNotFound is returned when a lookup or targeted update matches no
// record. The service layer translates this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint, such as seeding an admin username that already exists.
var ErrDuplicate = errors.New("duplicate")
