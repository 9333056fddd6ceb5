package dto

import "time"

type PlanRequest struct {
	Pickup      string   `json:"pickup"`
	Destination string   `json:"destination"`
	Stops       []string `json:"stops"`
}

type StopRankingResponse struct {
	Address    string  `json:"address"`
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
	DistanceKm float64 `json:"distance_from_pickup_km"`
}

type SummaryResponse struct {
	DistanceKm        float64   `json:"distance_km"`
	DurationMinutes   float64   `json:"duration_minutes"`
	ExpectedArrival   time.Time `json:"expected_arrival"`
	OptimizerETA      string    `json:"optimizer_eta,omitempty"`
	PredictedETAMin   *float64  `json:"predicted_eta_min,omitempty"`
	LiveTraffic       string    `json:"live_traffic,omitempty"`
	NearestStop       string    `json:"nearest_stop"`
	SecondNearestStop string    `json:"second_nearest_stop,omitempty"`
	RouteOrder        []string  `json:"route_order"`
	Text              string    `json:"text"`
}

type MarkerResponse struct {
	Label      string  `json:"label"`
	Popup      string  `json:"popup"`
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
	Emphasized bool    `json:"emphasized,omitempty"`
}

type RenderResponse struct {
	Markers []MarkerResponse `json:"markers"`
	Line    [][]float64      `json:"line"`
}

type PlanResponse struct {
	OrderedAddresses []string              `json:"ordered_addresses"`
	DistanceMeters   float64               `json:"distance_meters"`
	DurationSeconds  float64               `json:"duration_seconds"`
	Ranking          []StopRankingResponse `json:"ranking"`
	Summary          SummaryResponse       `json:"summary"`
	Render           RenderResponse        `json:"render"`
}

type SaveRequest struct {
	Name           string `json:"name"`
	RecipientEmail string `json:"recipient_email"`
	MapImageBase64 string `json:"map_image_base64"`
}

type SaveResponse struct {
	ID                int64  `json:"id"`
	Status            string `json:"status"`
	NotificationError string `json:"notification_error,omitempty"`
}

type LastTripResponse struct {
	PlannedAt        time.Time       `json:"planned_at"`
	OrderedAddresses []string        `json:"ordered_addresses"`
	DistanceMeters   float64         `json:"distance_meters"`
	DurationSeconds  float64         `json:"duration_seconds"`
	Summary          SummaryResponse `json:"summary"`
}
