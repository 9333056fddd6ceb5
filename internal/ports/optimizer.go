package ports

import (
	"context"
	"trip-route-service/internal/auth"
	"trip-route-service/internal/domain"
)

// Contract for the external visiting-order optimizer.
//
// Outcomes are three-way: a usable result, domain.ErrSessionExpired on an
// authentication rejection, or domain.ErrOptimizerUnavailable for any other
// failure or a response lacking a usable order.
type RouteOptimizer interface {
	Optimize(ctx context.Context, session auth.Session, addresses []string) (*domain.OptimizationResult, error)
}
