package repository

import "errors"

// Contract errors returned by repository implementations. The postgres
// layer maps driver-level failures (pgx.ErrNoRows, unique-violation
// SQLSTATE 23505) onto these so callers never depend on the driver.
var (
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is the unique-constraint verdict on users.email.
	// The constraint, not the existence pre-check, is the final arbiter
	// for concurrent registrations.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrRoleNotFound means the role reference data was not seeded.
	// This is a deployment precondition, not a user-facing error.
	ErrRoleNotFound = errors.New("role not found")

	// ErrDuplicateTicketType is the unique verdict on
	// event_ticket_types (event_id, ticket_type_id).
	ErrDuplicateTicketType = errors.New("ticket type already attached to event")
)
