package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writePipelineError maps the pipeline error taxonomy onto HTTP statuses.
// Session expiry is always its own user-actionable condition.
func writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	var unresolved *domain.UnresolvedAddressError
	var persistence *domain.PersistenceError

	switch {
	case errors.Is(err, domain.ErrMissingInput), errors.Is(err, domain.ErrNoStops):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSessionExpired):
		writeError(w, r, http.StatusUnauthorized, domain.ErrSessionExpired.Error())
	case errors.As(err, &unresolved):
		writeError(w, r, http.StatusNotFound, unresolved.Error())
	case errors.Is(err, domain.ErrNoRoute):
		writeError(w, r, http.StatusNotFound, domain.ErrNoRoute.Error())
	case errors.Is(err, services.ErrNoTripToSave):
		writeError(w, r, http.StatusNotFound, services.ErrNoTripToSave.Error())
	case errors.Is(err, domain.ErrOptimizerUnavailable):
		writeError(w, r, http.StatusBadGateway, domain.ErrOptimizerUnavailable.Error())
	case errors.As(err, &persistence):
		writeError(w, r, http.StatusBadGateway, persistence.Error())
	default:
		log.Printf("pipeline failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
