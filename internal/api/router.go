package api

import (
	"net/http"
	"trip-route-service/internal/api/handlers"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	orchestrator *services.Orchestrator,
	geocoder ports.Geocoder,
	store ports.RouteStore,
) http.Handler {
	mux := http.NewServeMux()

	suggestHandler := &handlers.SuggestHandler{Geocoder: geocoder}
	routeHandler := &handlers.RouteHandler{
		Orchestrator: orchestrator,
		Store:        store,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/suggest", suggestHandler.Suggest)
	mux.HandleFunc("/routes/plan", routeHandler.Plan)
	mux.HandleFunc("/routes/save", routeHandler.Save)
	mux.HandleFunc("/routes/last", routeHandler.Last)

	return requestIDMiddleware(loggingMiddleware(mux))
}
