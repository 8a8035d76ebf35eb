package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through
// one of the constructor functions. Validating a zero-value UUID returns it.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identity value object shared by every aggregate and entity in
// the dispatch domain: routes, stops, orders and deliverers all carry one.
// It wraps github.com/google/uuid so the rest of the codebase never touches
// the library type directly.
//
// The zero value is invalid; construct through NewUUID, UUIDFromString, or
// UUIDFromBytes. UUID is immutable and safe for concurrent use.
//
// Example usage:
//
//	routeID := kernel.NewUUID()
//
//	stopID, err := kernel.UUIDFromString(ctx.Param("stopId"))
//	if err != nil {
//	    // reject the request
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random version 4 UUID. This is how new aggregates
// (routes, stops) obtain their identity.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its text form, accepting the standard
// representations the underlying library does (plain, braced, urn:uuid:).
// Used at the HTTP boundary for path and body identifiers.
//
// Example:
//
//	routeID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return fmt.Errorf("invalid route ID: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a raw 16-byte value, rejecting input of
// the wrong length and the nil UUID. Repositories use it when rehydrating
// aggregates from scanned database columns.
//
// Example:
//
//	var id uuid.UUID
//	// ... rows.Scan(&id, ...)
//	routeID, err := kernel.UUIDFromBytes(id[:])
//	if err != nil {
//	    return fmt.Errorf("corrupt route ID: %w", err)
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// A zero value renders as all zeros. This is the form used in JSON
// responses and log fields.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the underlying uuid.UUID for persistence mapping, where the
// DTO columns are typed as uuid.UUID. For a byte slice, slice the result.
// Domain and application code should not need this accessor.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two UUIDs carry the same value.
//
// Example:
//
//	if stop.ID().IsEqual(cmd.StopID()) {
//	    // this is the requested stop
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate checks that the UUID came through a constructor.
// Returns ErrUUIDIsNotConstructed for the zero (nil) UUID.
//
// Value objects and commands call this on their identifier fields during
// their own construction:
//
//	func (c *StartRouteCommand) setRouteID(routeID kernel.UUID) error {
//	    if err := routeID.Validate(); err != nil {
//	        return errs.NewValueIsRequiredErrorWithCause("routeId", err)
//	    }
//	    ...
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
