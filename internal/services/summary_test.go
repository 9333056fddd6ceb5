package services

import (
	"strings"
	"testing"
	"time"
	"trip-route-service/internal/domain"
)

func summaryFixture(t *testing.T, opt *domain.OptimizationResult, predicted *float64) Summary {
	t.Helper()

	trip := &domain.Trip{DistanceMeters: 333000, DurationSeconds: 3600}
	stops := []domain.ResolvedPoint{
		{Address: "S2", Coordinates: domain.Coordinates{Lon: 0, Lat: 2}},
		{Address: "S1", Coordinates: domain.Coordinates{Lon: 0, Lat: 1}},
	}

	ranking, err := RankStops(domain.Coordinates{Lon: 0, Lat: 0}, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	return BuildSummary("P", "D", trip, ranking, stops, opt, predicted, now)
}

func TestSummaryFixedLineOrder(t *testing.T) {
	eta := 900.0
	predicted := 58.5
	s := summaryFixture(t, &domain.OptimizationResult{
		LiveTraffic: "moderate",
		ETASeconds:  &eta,
	}, &predicted)

	want := strings.Join([]string{
		"Distance: 333.00 km",
		"Duration (Live Traffic ETA): 60.00 minutes",
		"Expected Arrival Time: 15:30",
		"Estimated Time of Arrival (ETA): 15.00 minutes",
		"Predicted ETA (ML): 58.50 minutes",
		"Live Traffic: moderate",
		"Nearest Stop: S1",
		"Second Nearest Stop: S2",
		"Route: P -> S1 -> S2 -> D",
	}, "\n")

	if s.Text != want {
		t.Fatalf("summary text:\n%s\nwant:\n%s", s.Text, want)
	}
}

func TestSummaryOmitsAbsentAnnotations(t *testing.T) {
	s := summaryFixture(t, nil, nil)

	for _, unexpected := range []string{"Estimated Time of Arrival", "Predicted ETA", "Live Traffic"} {
		if strings.Contains(s.Text, unexpected) {
			t.Errorf("summary must omit %q when absent:\n%s", unexpected, s.Text)
		}
	}
}

func TestSummaryPassesThroughTextualETA(t *testing.T) {
	s := summaryFixture(t, &domain.OptimizationResult{ETAText: "about 20"}, nil)

	if !strings.Contains(s.Text, "Estimated Time of Arrival (ETA): about 20 minutes") {
		t.Fatalf("summary:\n%s", s.Text)
	}
}

func TestSummaryRouteOrderWithExtraStops(t *testing.T) {
	trip := &domain.Trip{DistanceMeters: 1000, DurationSeconds: 60}

	// Resolved order S3, S1, S2; nearest is S1, second-nearest S2, so S3
	// stays behind the call-outs but keeps its resolved position.
	stops := []domain.ResolvedPoint{
		{Address: "S3", Coordinates: domain.Coordinates{Lon: 0, Lat: 3}},
		{Address: "S1", Coordinates: domain.Coordinates{Lon: 0, Lat: 1}},
		{Address: "S2", Coordinates: domain.Coordinates{Lon: 0, Lat: 2}},
	}

	ranking, err := RankStops(domain.Coordinates{Lon: 0, Lat: 0}, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := BuildSummary("P", "D", trip, ranking, stops, nil, nil, time.Now())

	want := []string{"P", "S1", "S2", "S3", "D"}
	if len(s.RouteOrder) != len(want) {
		t.Fatalf("route order = %v", s.RouteOrder)
	}
	for i, w := range want {
		if s.RouteOrder[i] != w {
			t.Errorf("route order[%d] = %q, want %q", i, s.RouteOrder[i], w)
		}
	}
}
