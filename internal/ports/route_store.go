package ports

import (
	"context"
	"trip-route-service/internal/auth"
	"trip-route-service/internal/domain"
)

// Payload for persisting a finalized route with the external provider.
type SaveRouteRequest struct {
	Name           string
	DistanceKm     float64
	DurationMin    float64
	Route          []string
	RecipientEmail string
	MapImageBase64 string
}

// Contract for the persistence/email provider. Save and Notify are two
// independent network calls: a Notify failure after a successful Save
// leaves the route persisted but unnotified.
type RouteStore interface {
	Save(ctx context.Context, session auth.Session, req SaveRouteRequest) (*domain.SavedRoute, error)
	Notify(ctx context.Context, session auth.Session, routeID int64, recipientEmail string) error
}
