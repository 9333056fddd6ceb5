package optimize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"trip-route-service/internal/auth"
	"trip-route-service/internal/domain"
)

func newTestOptimizer(t *testing.T, handler http.HandlerFunc) *HTTPOptimizer {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	o, err := NewHTTPOptimizer(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return o
}

func TestOptimizeSuccess(t *testing.T) {
	o := newTestOptimizer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}

		var req optimizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Addresses) != 3 || req.Addresses[1].Address != "B" {
			t.Fatalf("request addresses = %+v", req.Addresses)
		}

		w.Write([]byte(`{"optimized_order":["A","C","B"],"live_traffic":"moderate","eta":900}`))
	})

	got, err := o.Optimize(context.Background(), auth.Session{Token: "tok"}, []string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.OptimizedOrder) != 3 || got.OptimizedOrder[1] != "C" {
		t.Fatalf("order = %v", got.OptimizedOrder)
	}
	if got.LiveTraffic != "moderate" {
		t.Errorf("live traffic = %q", got.LiveTraffic)
	}
	if got.ETASeconds == nil || *got.ETASeconds != 900 {
		t.Errorf("eta seconds = %v", got.ETASeconds)
	}
}

func TestOptimizeUnauthorized(t *testing.T) {
	o := newTestOptimizer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusUnauthorized)
	})

	_, err := o.Optimize(context.Background(), auth.Session{Token: "stale"}, []string{"A", "B"})
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected session expired, got %v", err)
	}
}

func TestOptimizeUnavailableOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"optimized_order": "not a list"`))
		}},
		{"empty order", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"optimized_order":[]}`))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := newTestOptimizer(t, tc.handler)
			_, err := o.Optimize(context.Background(), auth.Session{Token: "tok"}, []string{"A", "B"})
			if !errors.Is(err, domain.ErrOptimizerUnavailable) {
				t.Fatalf("expected unavailable, got %v", err)
			}
		})
	}
}

func TestParseETATextForm(t *testing.T) {
	seconds, text := parseETA(json.RawMessage(`"15 min"`))
	if seconds != nil {
		t.Fatalf("expected no numeric eta, got %v", *seconds)
	}
	if text != "15 min" {
		t.Fatalf("eta text = %q", text)
	}
}
