package ports

import (
	"context"
	"trip-route-service/internal/domain"
)

// Contract for turning free-text addresses into coordinates.
type Geocoder interface {
	// Resolve returns the first candidate's coordinates for the address.
	// found=false means the provider had no result; that is not an error
	// at this layer, the caller decides fail-fast vs. skip.
	Resolve(ctx context.Context, address string) (coords domain.Coordinates, found bool, err error)

	// Suggest returns up to five candidates for a partially typed query.
	// It never fails: on any provider error it returns an empty list.
	Suggest(ctx context.Context, query string) []domain.Suggestion
}
