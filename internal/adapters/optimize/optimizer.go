package optimize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"trip-route-service/internal/auth"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"
)

// HTTPOptimizer implements the RouteOptimizer port against the external
// optimization service.
//
// The optimizer is optional infrastructure: only an authentication
// rejection (401) is surfaced as its own condition; every other failure,
// malformed body, or response without a usable order collapses into
// domain.ErrOptimizerUnavailable so callers can degrade to the
// user-entered order.
type HTTPOptimizer struct {
	session *http.Client
	baseURL string
}

func NewHTTPOptimizer(baseURL string) (*HTTPOptimizer, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("optimizer base URL is empty")
	}

	return &HTTPOptimizer{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type optimizeRequest struct {
	Addresses []optimizeAddress `json:"addresses"`
}

type optimizeAddress struct {
	Address string `json:"address"`
}

type optimizeResponse struct {
	OptimizedOrder []string        `json:"optimized_order"`
	LiveTraffic    string          `json:"live_traffic"`
	ETA            json.RawMessage `json:"eta"`
}

// Optimize sends the full address list and returns the suggested order.
func (o *HTTPOptimizer) Optimize(
	ctx context.Context,
	session auth.Session,
	addresses []string,
) (_ *domain.OptimizationResult, err error) {
	defer obs.Time(ctx, "optimizer.Optimize")(&err)

	body := optimizeRequest{Addresses: make([]optimizeAddress, 0, len(addresses))}
	for _, a := range addresses {
		body.Addresses = append(body.Addresses, optimizeAddress{Address: a})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("optimize: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/optimize", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("optimize: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := o.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOptimizerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrSessionExpired
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrOptimizerUnavailable, resp.StatusCode)
	}

	var decoded optimizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrOptimizerUnavailable, err)
	}

	if len(decoded.OptimizedOrder) == 0 {
		return nil, fmt.Errorf("%w: response carries no order", domain.ErrOptimizerUnavailable)
	}

	result := &domain.OptimizationResult{
		OptimizedOrder: decoded.OptimizedOrder,
		LiveTraffic:    decoded.LiveTraffic,
	}
	result.ETASeconds, result.ETAText = parseETA(decoded.ETA)

	return result, nil
}

// parseETA accepts the provider's loosely typed eta field: seconds when
// numeric, preformatted text otherwise.
func parseETA(raw json.RawMessage) (*float64, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ""
	}

	var seconds float64
	if err := json.Unmarshal(raw, &seconds); err == nil {
		return &seconds, ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return nil, text
	}

	return nil, ""
}
