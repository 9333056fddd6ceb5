package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/auth"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/render"
	"trip-route-service/internal/services"
)

// RouteHandler exposes the route pipeline: plan a trip, save the last
// computed one, read it back.
type RouteHandler struct {
	Orchestrator *services.Orchestrator
	Store        ports.RouteStore
}

// Plan runs the whole pipeline for one request and returns the pure
// result; no render or session state is kept server-side beyond the
// single retained last trip.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session := auth.FromRequest(r)

	result, err := h.Orchestrator.Plan(r.Context(), session, services.PlanRequest{
		Pickup:      req.Pickup,
		Destination: req.Destination,
		Stops:       req.Stops,
	})
	if err != nil {
		writePipelineError(w, r, err)
		return
	}

	res := dto.PlanResponse{
		OrderedAddresses: result.Trip.OrderedAddresses,
		DistanceMeters:   result.Trip.DistanceMeters,
		DurationSeconds:  result.Trip.DurationSeconds,
		Ranking:          make([]dto.StopRankingResponse, 0, len(result.Ranking)),
		Summary:          summaryResponse(result.Summary),
		Render:           renderResponse(result.Render),
	}
	for _, s := range result.Ranking {
		res.Ranking = append(res.Ranking, dto.StopRankingResponse{
			Address:    s.Address,
			Lon:        s.Coordinates.Lon,
			Lat:        s.Coordinates.Lat,
			DistanceKm: s.DistanceFromPickup,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Save persists the retained last trip and triggers the email
// notification. A failed notification after a successful save still
// responds 200: the record exists, only the email failed.
func (h *RouteHandler) Save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session := auth.FromRequest(r)
	if !session.Valid() {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.SaveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	outcome, err := h.Orchestrator.SaveLastTrip(r.Context(), session, h.Store, services.SaveRequest{
		Name:           req.Name,
		RecipientEmail: req.RecipientEmail,
		MapImageBase64: req.MapImageBase64,
	})
	if err != nil {
		writePipelineError(w, r, err)
		return
	}

	res := dto.SaveResponse{ID: outcome.RouteID, Status: "saved and emailed"}
	if outcome.NotificationErr != nil {
		res.Status = "saved"
		res.NotificationError = outcome.NotificationErr.Error()
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Last returns the retained last computed trip.
func (h *RouteHandler) Last(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	last, ok := h.Orchestrator.LastComputedTrip()
	if !ok {
		writeError(w, r, http.StatusNotFound, "no trip computed yet")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LastTripResponse{
		PlannedAt:        last.PlannedAt,
		OrderedAddresses: last.Trip.OrderedAddresses,
		DistanceMeters:   last.Trip.DistanceMeters,
		DurationSeconds:  last.Trip.DurationSeconds,
		Summary:          summaryResponse(last.Summary),
	})
}

// decodeBody decodes a single strict JSON object, rejecting trailing data.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func summaryResponse(s services.Summary) dto.SummaryResponse {
	return dto.SummaryResponse{
		DistanceKm:        s.DistanceKm,
		DurationMinutes:   s.DurationMinutes,
		ExpectedArrival:   s.ExpectedArrival,
		OptimizerETA:      s.OptimizerETA,
		PredictedETAMin:   s.PredictedETAMin,
		LiveTraffic:       s.LiveTraffic,
		NearestStop:       s.NearestStop,
		SecondNearestStop: s.SecondNearestStop,
		RouteOrder:        s.RouteOrder,
		Text:              s.Text,
	}
}

func renderResponse(p render.Plan) dto.RenderResponse {
	res := dto.RenderResponse{
		Markers: make([]dto.MarkerResponse, 0, len(p.Markers)),
		Line:    make([][]float64, 0, len(p.Line)),
	}
	for _, m := range p.Markers {
		res.Markers = append(res.Markers, dto.MarkerResponse{
			Label:      m.Label,
			Popup:      m.Popup,
			Lon:        m.Coordinates.Lon,
			Lat:        m.Coordinates.Lat,
			Emphasized: m.Emphasized,
		})
	}
	for _, c := range p.Line {
		res.Line = append(res.Line, c.CoordsToList())
	}
	return res
}
