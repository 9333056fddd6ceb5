package eta

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"trip-route-service/internal/ports"
)

// HTTPPredictor implements the ETAPredictor port against the learned ETA
// model service. Strictly an annotation source: callers drop the estimate
// on any failure.
type HTTPPredictor struct {
	session *http.Client
	baseURL string
}

func NewHTTPPredictor(baseURL string) (*HTTPPredictor, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("eta predictor base URL is empty")
	}

	return &HTTPPredictor{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type predictRequest struct {
	DistanceKm   float64 `json:"distance_km"`
	NumStops     int     `json:"num_stops"`
	Weather      string  `json:"weather"`
	TimeOfDay    string  `json:"time_of_day"`
	TrafficLevel string  `json:"traffic_level"`
}

type predictResponse struct {
	ETAMin float64 `json:"eta_min"`
}

func (p *HTTPPredictor) PredictETA(ctx context.Context, features ports.ETAFeatures) (float64, error) {
	body := predictRequest{
		DistanceKm:   features.DistanceKm,
		NumStops:     features.NumStops,
		Weather:      features.Weather,
		TimeOfDay:    features.TimeOfDay,
		TrafficLevel: features.TrafficLevel,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("predict eta: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/predict_eta", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("predict eta: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.session.Do(req)
	if err != nil {
		return 0, fmt.Errorf("predict eta: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("predict eta: unexpected status: %d", resp.StatusCode)
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("predict eta: decode response: %w", err)
	}

	return decoded.ETAMin, nil
}
