package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"trip-route-service/internal/auth"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// No successful run has completed yet, so there is nothing to persist.
var ErrNoTripToSave = errors.New("no route to save, generate a route first")

const defaultRouteName = "My Route"

type SaveRequest struct {
	Name           string
	RecipientEmail string
	MapImageBase64 string
}

// SaveOutcome distinguishes "stored and emailed" from "stored but the
// email failed". NotificationErr set means the record exists and only the
// notification went wrong; that is reported, never treated as fatal.
type SaveOutcome struct {
	Saved           *ports.SaveRouteRequest
	RouteID         int64
	NotificationErr error
}

// SaveLastTrip persists the retained last computed trip with the external
// provider and then triggers the email notification. The two calls are
// independent: a save failure aborts, a notify failure after a successful
// save is surfaced in the outcome as non-fatal.
func (o *Orchestrator) SaveLastTrip(
	ctx context.Context,
	session auth.Session,
	store ports.RouteStore,
	req SaveRequest,
) (*SaveOutcome, error) {
	last, ok := o.LastComputedTrip()
	if !ok {
		return nil, ErrNoTripToSave
	}

	email := strings.TrimSpace(req.RecipientEmail)
	if email == "" {
		return nil, fmt.Errorf("%w: recipient email", domain.ErrMissingInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultRouteName
	}

	saveReq := ports.SaveRouteRequest{
		Name:           name,
		DistanceKm:     round2(last.Trip.DistanceKm()),
		DurationMin:    round2(last.Trip.DurationMinutes()),
		Route:          last.Trip.OrderedAddresses,
		RecipientEmail: email,
		MapImageBase64: req.MapImageBase64,
	}

	saved, err := store.Save(ctx, session, saveReq)
	if err != nil {
		return nil, err
	}

	outcome := &SaveOutcome{Saved: &saveReq, RouteID: saved.ID}
	if err := store.Notify(ctx, session, saved.ID, email); err != nil {
		outcome.NotificationErr = err
	}

	return outcome, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
