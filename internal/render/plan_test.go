package render

import (
	"testing"
	"trip-route-service/internal/domain"
)

func TestBuildPlanMarkersAndLine(t *testing.T) {
	waypoints := []Waypoint{
		{Label: "Pickup", Point: domain.ResolvedPoint{Address: "A", Coordinates: domain.Coordinates{Lon: 0, Lat: 0}}},
		{Label: "Stop 1", Point: domain.ResolvedPoint{Address: "B", Coordinates: domain.Coordinates{Lon: 0, Lat: 1}}},
		{Label: "Destination", Point: domain.ResolvedPoint{Address: "C", Coordinates: domain.Coordinates{Lon: 0, Lat: 2}}},
	}
	nearest := &domain.StopRanking{
		Address:            "B",
		Coordinates:        domain.Coordinates{Lon: 0, Lat: 1},
		DistanceFromPickup: 111.19,
	}
	geometry := []domain.Coordinates{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 2}}

	plan := BuildPlan(waypoints, nearest, geometry)

	if got, want := len(plan.Markers), 4; got != want {
		t.Fatalf("markers = %d, want %d", got, want)
	}
	if plan.Markers[0].Popup != "Pickup: A" {
		t.Errorf("pickup popup = %q", plan.Markers[0].Popup)
	}

	last := plan.Markers[3]
	if !last.Emphasized || last.Label != "Nearest Stop" {
		t.Errorf("nearest marker = %+v, want emphasized Nearest Stop", last)
	}
	if last.Popup != "Nearest Stop: B" {
		t.Errorf("nearest popup = %q", last.Popup)
	}

	if len(plan.Line) != 2 {
		t.Errorf("line length = %d, want 2", len(plan.Line))
	}
}

func TestBuildPlanWithoutNearest(t *testing.T) {
	waypoints := []Waypoint{
		{Label: "Pickup", Point: domain.ResolvedPoint{Address: "A"}},
		{Label: "Destination", Point: domain.ResolvedPoint{Address: "C"}},
	}

	plan := BuildPlan(waypoints, nil, nil)

	if got, want := len(plan.Markers), 2; got != want {
		t.Fatalf("markers = %d, want %d", got, want)
	}
	for _, m := range plan.Markers {
		if m.Emphasized {
			t.Errorf("unexpected emphasized marker %q", m.Label)
		}
	}
}
