package domain

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. A run aborts on the first failure; there are no
// automatic retries anywhere, every retry is a user-initiated repeat.
var (
	// Pickup or destination text was empty; rejected before any network call.
	ErrMissingInput = errors.New("pickup and destination are required")

	// No stops remained after partitioning; a route needs at least one.
	ErrNoStops = errors.New("no valid stops found")

	// The directions provider found no drivable route.
	ErrNoRoute = errors.New("no route found")

	// A backend rejected the credential; the caller must re-authenticate.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// The optimizer is degraded or returned no usable order. Absorbed by
	// falling back to the user-entered order, never surfaced as an error.
	ErrOptimizerUnavailable = errors.New("route optimizer unavailable")
)

// An address the geocoder could not resolve. Fatal for the run; partial
// routes are never shown.
type UnresolvedAddressError struct {
	Address string
}

func (e *UnresolvedAddressError) Error() string {
	return fmt.Sprintf("could not resolve address %q", e.Address)
}

// The save call against the persistence provider failed; nothing was stored.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save route: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// The email notification failed after the route was already persisted.
// Distinct from PersistenceError: the record exists, only the email failed.
type NotificationError struct {
	RouteID int64
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("route %d saved but email notification failed: %v", e.RouteID, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
