package ports

import (
	"context"
	"trip-route-service/internal/domain"
)

// Contract for the drivable-path provider.
type DirectionsProvider interface {
	// Route returns path geometry, distance and duration over the given
	// ordered coordinate sequence (at least two points). A provider with
	// no route reports domain.ErrNoRoute; there is no fallback path-finder.
	Route(ctx context.Context, points []domain.Coordinates) (*domain.Trip, error)
}
