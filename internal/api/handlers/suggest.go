package handlers

import (
	"net/http"
	"strings"
	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/ports"
)

// SuggestHandler serves address autocomplete. It is hit on every keystroke
// and never fails outward: an unusable query or a degraded provider both
// yield an empty suggestion list.
type SuggestHandler struct {
	Geocoder ports.Geocoder
}

func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))

	res := dto.SuggestResponse{Suggestions: []dto.SuggestionResponse{}}
	if query != "" {
		for _, s := range h.Geocoder.Suggest(r.Context(), query) {
			res.Suggestions = append(res.Suggestions, dto.SuggestionResponse{
				Label: s.Label,
				Lon:   s.Coordinates.Lon,
				Lat:   s.Coordinates.Lat,
			})
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
