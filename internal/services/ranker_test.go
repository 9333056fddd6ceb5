package services

import (
	"errors"
	"testing"
	"trip-route-service/internal/domain"
)

func TestRankStopsAscending(t *testing.T) {
	pickup := domain.Coordinates{Lon: 0, Lat: 0}
	stops := []domain.ResolvedPoint{
		{Address: "far", Coordinates: domain.Coordinates{Lon: 0, Lat: 2}},
		{Address: "near", Coordinates: domain.Coordinates{Lon: 0, Lat: 1}},
		{Address: "farther", Coordinates: domain.Coordinates{Lon: 0, Lat: 3}},
	}

	ranking, err := RankStops(pickup, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"near", "far", "farther"}
	for i, w := range want {
		if ranking[i].Address != w {
			t.Errorf("ranking[%d] = %q, want %q", i, ranking[i].Address, w)
		}
	}

	for i := 1; i < len(ranking); i++ {
		if ranking[i].DistanceFromPickup < ranking[i-1].DistanceFromPickup {
			t.Errorf("ranking not ascending at %d: %v < %v",
				i, ranking[i].DistanceFromPickup, ranking[i-1].DistanceFromPickup)
		}
	}
}

func TestRankStopsStableOnTies(t *testing.T) {
	pickup := domain.Coordinates{Lon: 0, Lat: 0}

	// Same coordinates, so identical distances; original relative order
	// must be preserved.
	stops := []domain.ResolvedPoint{
		{Address: "first", Coordinates: domain.Coordinates{Lon: 1, Lat: 1}},
		{Address: "second", Coordinates: domain.Coordinates{Lon: 1, Lat: 1}},
		{Address: "third", Coordinates: domain.Coordinates{Lon: 1, Lat: 1}},
	}

	ranking, err := RankStops(pickup, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if ranking[i].Address != w {
			t.Errorf("ranking[%d] = %q, want %q", i, ranking[i].Address, w)
		}
	}
}

func TestRankStopsEmptyIsNoStops(t *testing.T) {
	_, err := RankStops(domain.Coordinates{}, nil)
	if !errors.Is(err, domain.ErrNoStops) {
		t.Fatalf("expected no-stops, got %v", err)
	}
}
