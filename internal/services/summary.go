package services

import (
	"fmt"
	"strings"
	"time"
	"trip-route-service/internal/domain"
)

// Summary is the deterministic, render-ready digest of a planned trip.
// Its line order is a contract the UI and PDF export rely on; fields and
// lines never reorder between runs.
type Summary struct {
	DistanceKm        float64
	DurationMinutes   float64
	ExpectedArrival   time.Time
	OptimizerETA      string // minutes with 2 decimals, or provider text; empty when absent
	PredictedETAMin   *float64
	LiveTraffic       string
	NearestStop       string
	SecondNearestStop string
	RouteOrder        []string
	Text              string
}

// BuildSummary assembles the summary in its fixed order: total distance,
// total duration, wall-clock arrival, optimizer annotations when present,
// the nearest and second-nearest stop call-outs, and the final route list
// (pickup, nearest, second-nearest, remaining stops in resolved order,
// destination).
func BuildSummary(
	pickup string,
	destination string,
	trip *domain.Trip,
	ranking []domain.StopRanking,
	stopsInResolvedOrder []domain.ResolvedPoint,
	opt *domain.OptimizationResult,
	predictedETAMin *float64,
	now time.Time,
) Summary {
	s := Summary{
		DistanceKm:      trip.DistanceKm(),
		DurationMinutes: trip.DurationMinutes(),
		ExpectedArrival: now.Add(time.Duration(trip.DurationSeconds * float64(time.Second))),
		PredictedETAMin: predictedETAMin,
		NearestStop:     ranking[0].Address,
	}

	nearest := ranking[0]
	var second *domain.StopRanking
	if len(ranking) > 1 {
		second = &ranking[1]
		s.SecondNearestStop = second.Address
	}

	if opt != nil {
		s.LiveTraffic = opt.LiveTraffic
		switch {
		case opt.ETASeconds != nil:
			s.OptimizerETA = fmt.Sprintf("%.2f", *opt.ETASeconds/60)
		case opt.ETAText != "":
			s.OptimizerETA = opt.ETAText
		}
	}

	s.RouteOrder = routeOrder(pickup, destination, nearest, second, stopsInResolvedOrder)
	s.Text = s.render()

	return s
}

// routeOrder calls out the two closest stops right after pickup and appends
// every other stop in its resolved order. Duplicate stop texts are kept
// distinct by matching on coordinates as well, consuming each call-out once.
func routeOrder(
	pickup string,
	destination string,
	nearest domain.StopRanking,
	second *domain.StopRanking,
	stops []domain.ResolvedPoint,
) []string {
	order := make([]string, 0, len(stops)+2)
	order = append(order, pickup, nearest.Address)
	if second != nil {
		order = append(order, second.Address)
	}

	usedNearest, usedSecond := false, false
	for _, s := range stops {
		if !usedNearest && s.Address == nearest.Address && s.Coordinates == nearest.Coordinates {
			usedNearest = true
			continue
		}
		if second != nil && !usedSecond && s.Address == second.Address && s.Coordinates == second.Coordinates {
			usedSecond = true
			continue
		}
		order = append(order, s.Address)
	}

	return append(order, destination)
}

func (s Summary) render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Distance: %.2f km\n", s.DistanceKm)
	fmt.Fprintf(&b, "Duration (Live Traffic ETA): %.2f minutes\n", s.DurationMinutes)
	fmt.Fprintf(&b, "Expected Arrival Time: %s\n", s.ExpectedArrival.Format("15:04"))

	if s.OptimizerETA != "" {
		fmt.Fprintf(&b, "Estimated Time of Arrival (ETA): %s minutes\n", s.OptimizerETA)
	}
	if s.PredictedETAMin != nil {
		fmt.Fprintf(&b, "Predicted ETA (ML): %.2f minutes\n", *s.PredictedETAMin)
	}
	if s.LiveTraffic != "" {
		fmt.Fprintf(&b, "Live Traffic: %s\n", s.LiveTraffic)
	}

	fmt.Fprintf(&b, "Nearest Stop: %s\n", s.NearestStop)
	if s.SecondNearestStop != "" {
		fmt.Fprintf(&b, "Second Nearest Stop: %s\n", s.SecondNearestStop)
	}

	fmt.Fprintf(&b, "Route: %s", strings.Join(s.RouteOrder, " -> "))

	return b.String()
}
