package directions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"trip-route-service/internal/domain"
)

func newTestDirections(t *testing.T, handler http.HandlerFunc) *MapboxDirections {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m, err := NewMapboxDirections("test-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.baseURL = srv.URL
	return m
}

func TestRouteDecodesTrip(t *testing.T) {
	m := newTestDirections(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "0,0") || !strings.Contains(r.URL.Path, "0,3") {
			t.Errorf("path is missing lon,lat pairs: %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("geometries"); got != "geojson" {
			t.Errorf("geometries = %q", got)
		}
		w.Write([]byte(`{"routes":[{
			"geometry":{"type":"LineString","coordinates":[[0,0],[0,1.5],[0,3]]},
			"distance":333000,
			"duration":3600
		}]}`))
	})

	trip, err := m.Route(context.Background(), []domain.Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0, Lat: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trip.DistanceMeters != 333000 {
		t.Errorf("distance = %v", trip.DistanceMeters)
	}
	if trip.DurationSeconds != 3600 {
		t.Errorf("duration = %v", trip.DurationSeconds)
	}
	if len(trip.Geometry) != 3 || trip.Geometry[1].Lat != 1.5 {
		t.Errorf("geometry = %v", trip.Geometry)
	}
}

func TestRouteNoRoutes(t *testing.T) {
	m := newTestDirections(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[]}`))
	})

	_, err := m.Route(context.Background(), []domain.Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 1, Lat: 1},
	})
	if !errors.Is(err, domain.ErrNoRoute) {
		t.Fatalf("expected no-route, got %v", err)
	}
}

func TestRouteRequiresTwoPoints(t *testing.T) {
	m := newTestDirections(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for a single point")
	})

	if _, err := m.Route(context.Background(), []domain.Coordinates{{Lon: 0, Lat: 0}}); err == nil {
		t.Fatal("expected an error")
	}
}
