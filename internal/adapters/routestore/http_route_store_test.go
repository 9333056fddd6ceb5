package routestore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"trip-route-service/internal/auth"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *HTTPRouteStore {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewHTTPRouteStore(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestSaveReturnsAssignedID(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/save_route_with_map" {
			t.Errorf("path = %q", r.URL.Path)
		}

		var req saveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.DistanceKm != 12.5 || len(req.Route) != 3 {
			t.Errorf("request = %+v", req)
		}

		w.Write([]byte(`{"id": 42}`))
	})

	saved, err := s.Save(context.Background(), auth.Session{Token: "tok"}, ports.SaveRouteRequest{
		Name:        "My Route",
		DistanceKm:  12.5,
		DurationMin: 30,
		Route:       []string{"A", "B", "C"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != 42 {
		t.Fatalf("id = %d, want 42", saved.ID)
	}
}

func TestSaveFailureIsPersistenceError(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"could not save route"}`))
	})

	_, err := s.Save(context.Background(), auth.Session{Token: "tok"}, ports.SaveRouteRequest{Name: "x"})

	var pe *domain.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestSaveUnauthorizedMapsToSessionExpired(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusUnauthorized)
	})

	_, err := s.Save(context.Background(), auth.Session{Token: "stale"}, ports.SaveRouteRequest{Name: "x"})
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected session expired, got %v", err)
	}
}

func TestNotifyFailureIsDistinctFromSave(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/save_route_with_map":
			w.Write([]byte(`{"id": 7}`))
		case "/email_route/":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"smtp is down"}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	})

	ctx := context.Background()
	session := auth.Session{Token: "tok"}

	saved, err := s.Save(ctx, session, ports.SaveRouteRequest{Name: "x", Route: []string{"A", "B"}})
	if err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if saved.ID != 7 {
		t.Fatalf("id = %d", saved.ID)
	}

	err = s.Notify(ctx, session, saved.ID, "driver@example.com")

	var ne *domain.NotificationError
	if !errors.As(err, &ne) {
		t.Fatalf("expected notification error, got %v", err)
	}
	if ne.RouteID != 7 {
		t.Errorf("notification error route id = %d", ne.RouteID)
	}

	var pe *domain.PersistenceError
	if errors.As(err, &pe) {
		t.Fatal("notify failure must not be a persistence error")
	}
}
