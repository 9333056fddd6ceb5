package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"trip-route-service/internal/auth"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/render"
)

type role int

const (
	rolePickup role = iota
	roleStop
	roleDestination
)

// An address tagged with its role before the optimizer call. Reordering
// and partitioning work on tags, never on string matching, so duplicate
// stop texts stay distinct.
type taggedAddress struct {
	text string
	role role
}

type PlanRequest struct {
	Pickup      string
	Destination string
	Stops       []string
}

// PlanResult is the pure outcome of one pipeline run: the trip, the stop
// ranking, the summary, and the render instructions. It carries no map or
// session state.
type PlanResult struct {
	Trip    *domain.Trip
	Ranking []domain.StopRanking
	Summary Summary
	Render  render.Plan
}

// The retained outcome of the most recent successful run.
type LastTrip struct {
	Trip      domain.Trip
	Summary   Summary
	PlannedAt time.Time
}

// Orchestrator sequences the route pipeline:
// resolve endpoints -> optimize order -> resolve order -> rank stops ->
// fetch directions -> summarize. Any failure aborts the run; there are no
// automatic retries, a retry is always a user-triggered repeat.
//
// Overlapping runs are not cancelled. Each run takes a generation number
// and only the newest generation may overwrite the retained last trip, so
// rapid repeated triggers cannot resurrect a stale result.
type Orchestrator struct {
	geocoder   ports.Geocoder
	optimizer  ports.RouteOptimizer
	directions ports.DirectionsProvider
	predictor  ports.ETAPredictor // optional
	now        func() time.Time

	gen     atomic.Uint64
	mu      sync.Mutex
	lastGen uint64
	last    *LastTrip
}

func NewOrchestrator(
	geocoder ports.Geocoder,
	optimizer ports.RouteOptimizer,
	directions ports.DirectionsProvider,
	predictor ports.ETAPredictor,
) *Orchestrator {
	return &Orchestrator{
		geocoder:   geocoder,
		optimizer:  optimizer,
		directions: directions,
		predictor:  predictor,
		now:        time.Now,
	}
}

// Plan runs the whole pipeline for one request.
func (o *Orchestrator) Plan(ctx context.Context, session auth.Session, req PlanRequest) (*PlanResult, error) {
	gen := o.gen.Add(1)

	pickup := strings.TrimSpace(req.Pickup)
	destination := strings.TrimSpace(req.Destination)
	if pickup == "" || destination == "" {
		return nil, domain.ErrMissingInput
	}

	entries := make([]taggedAddress, 0, len(req.Stops)+2)
	entries = append(entries, taggedAddress{text: pickup, role: rolePickup})
	for _, s := range req.Stops {
		if t := strings.TrimSpace(s); t != "" {
			entries = append(entries, taggedAddress{text: t, role: roleStop})
		}
	}
	entries = append(entries, taggedAddress{text: destination, role: roleDestination})

	// Optimizing: the optimizer is optional infrastructure. Only an
	// authentication rejection stops the run; everything else degrades to
	// the user-entered order.
	var opt *domain.OptimizationResult
	result, err := o.optimizer.Optimize(ctx, session, texts(entries))
	switch {
	case err == nil:
		if reordered, ok := reorderByTags(entries, result.OptimizedOrder); ok {
			entries = reordered
			opt = result
		} else {
			log.Printf("optimizer order does not match submitted addresses; using user-entered order")
		}
	case errors.Is(err, domain.ErrSessionExpired):
		return nil, err
	default:
		log.Printf("optimizer unavailable, using user-entered order: %v", err)
	}

	points, err := o.resolveAll(ctx, entries)
	if err != nil {
		return nil, err
	}

	// Ranking: partition by role tags, never by address text.
	var pickupPoint, destinationPoint domain.ResolvedPoint
	stops := make([]domain.ResolvedPoint, 0, len(points))
	for i, e := range entries {
		switch e.role {
		case rolePickup:
			pickupPoint = points[i]
		case roleDestination:
			destinationPoint = points[i]
		default:
			stops = append(stops, points[i])
		}
	}

	ranking, err := RankStops(pickupPoint.Coordinates, stops)
	if err != nil {
		return nil, err
	}

	// Routing: the full resolved sequence in the chosen order.
	coords := make([]domain.Coordinates, 0, len(points))
	for _, p := range points {
		coords = append(coords, p.Coordinates)
	}

	trip, err := o.directions.Route(ctx, coords)
	if err != nil {
		if errors.Is(err, domain.ErrNoRoute) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch directions: %w", err)
	}
	trip.OrderedAddresses = texts(entries)

	// Best-effort learned ETA annotation; never fatal.
	var predicted *float64
	if o.predictor != nil {
		v, err := o.predictor.PredictETA(ctx, ports.ETAFeatures{
			DistanceKm:   trip.DistanceKm(),
			NumStops:     len(stops),
			Weather:      "Clear",
			TimeOfDay:    "Afternoon",
			TrafficLevel: "Moderate",
		})
		if err != nil {
			log.Printf("eta prediction unavailable: %v", err)
		} else {
			predicted = &v
		}
	}

	now := o.now()
	summary := BuildSummary(
		pickupPoint.Address, destinationPoint.Address,
		trip, ranking, stops, opt, predicted, now,
	)

	plan := render.BuildPlan(waypoints(entries, points), &ranking[0], trip.Geometry)

	if !o.commit(gen, LastTrip{Trip: *trip, Summary: summary, PlannedAt: now}) {
		log.Printf("a newer run already finished; keeping its trip as the last computed one")
	}

	return &PlanResult{Trip: trip, Ranking: ranking, Summary: summary, Render: plan}, nil
}

// LastComputedTrip returns a copy of the retained last trip, if any.
func (o *Orchestrator) LastComputedTrip() (LastTrip, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.last == nil {
		return LastTrip{}, false
	}
	return *o.last, true
}

// resolveAll resolves every tagged address. Pickup and destination have no
// ordering dependency and resolve concurrently; stops resolve sequentially
// in the chosen order. The first unresolved address aborts the run.
func (o *Orchestrator) resolveAll(ctx context.Context, entries []taggedAddress) ([]domain.ResolvedPoint, error) {
	points := make([]domain.ResolvedPoint, len(entries))

	type endpointResult struct {
		idx   int
		point domain.ResolvedPoint
		err   error
	}

	ch := make(chan endpointResult, 2)
	launched := 0
	for i, e := range entries {
		if e.role == roleStop {
			continue
		}
		launched++
		go func(idx int, text string) {
			point, err := o.resolveOne(ctx, text)
			ch <- endpointResult{idx: idx, point: point, err: err}
		}(i, e.text)
	}

	var endpointErr error
	for n := 0; n < launched; n++ {
		r := <-ch
		if r.err != nil {
			if endpointErr == nil {
				endpointErr = r.err
			}
			continue
		}
		points[r.idx] = r.point
	}
	if endpointErr != nil {
		return nil, endpointErr
	}

	for i, e := range entries {
		if e.role != roleStop {
			continue
		}
		point, err := o.resolveOne(ctx, e.text)
		if err != nil {
			return nil, err
		}
		points[i] = point
	}

	return points, nil
}

func (o *Orchestrator) resolveOne(ctx context.Context, address string) (domain.ResolvedPoint, error) {
	coords, found, err := o.geocoder.Resolve(ctx, address)
	if err != nil {
		return domain.ResolvedPoint{}, fmt.Errorf("resolve %q: %w", address, err)
	}
	if !found {
		return domain.ResolvedPoint{}, &domain.UnresolvedAddressError{Address: address}
	}
	return domain.ResolvedPoint{Address: address, Coordinates: coords}, nil
}

// commit overwrites the single retained last-trip slot, newest generation
// wins. Reports whether this run's trip was kept.
func (o *Orchestrator) commit(gen uint64, lt LastTrip) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen < o.lastGen {
		return false
	}
	o.lastGen = gen
	o.last = &lt
	return true
}

// reorderByTags maps the optimizer's returned order back onto the tagged
// entries, consuming the first unused tag per address text. Reports false
// when the returned order drops, invents, or duplicates addresses; the
// caller then falls back to the user-entered order.
func reorderByTags(entries []taggedAddress, order []string) ([]taggedAddress, bool) {
	if len(order) != len(entries) {
		return nil, false
	}

	remaining := make(map[string][]int, len(entries))
	for i, e := range entries {
		remaining[e.text] = append(remaining[e.text], i)
	}

	out := make([]taggedAddress, 0, len(entries))
	for _, addr := range order {
		idxs := remaining[addr]
		if len(idxs) == 0 {
			return nil, false
		}
		out = append(out, entries[idxs[0]])
		remaining[addr] = idxs[1:]
	}

	return out, true
}

func texts(entries []taggedAddress) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.text)
	}
	return out
}

// waypoints labels each resolved point for rendering by its role and
// visiting position.
func waypoints(entries []taggedAddress, points []domain.ResolvedPoint) []render.Waypoint {
	out := make([]render.Waypoint, 0, len(points))
	stopN := 0
	for i, e := range entries {
		label := ""
		switch e.role {
		case rolePickup:
			label = "Pickup"
		case roleDestination:
			label = "Destination"
		default:
			stopN++
			label = fmt.Sprintf("Stop %d", stopN)
		}
		out = append(out, render.Waypoint{Label: label, Point: points[i]})
	}
	return out
}
