package routestore

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
	"trip-route-service/internal/ports"
)

// HTTPRouteStore implements the RouteStore port against the external
// persistence/email provider. Save and Notify are independent calls;
// callers must treat a Notify failure after a successful Save as a
// persisted-but-unnotified record, not as a lost one.
type HTTPRouteStore struct {
	session *http.Client
	baseURL string
}

func NewHTTPRouteStore(baseURL string) (*HTTPRouteStore, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("route store base URL is empty")
	}

	return &HTTPRouteStore{
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type saveRequest struct {
	Name           string   `json:"name"`
	DistanceKm     float64  `json:"distance_km"`
	DurationMin    float64  `json:"duration_min"`
	Route          []string `json:"route"`
	RecipientEmail string   `json:"recipient_email,omitempty"`
	MapImageBase64 string   `json:"map_image_base64,omitempty"`
}

type saveResponse struct {
	ID     int64  `json:"id"`
	Detail string `json:"detail"`
}

type notifyRequest struct {
	RouteID        int64  `json:"route_id"`
	RecipientEmail string `json:"recipient_email"`
}

type notifyResponse struct {
	Detail string `json:"detail"`
}

// Save submits the finalized route for storage and returns the
// server-assigned record.
func (s *HTTPRouteStore) Save(
	ctx context.Context,
	session auth.Session,
	req ports.SaveRouteRequest,
) (_ *domain.SavedRoute, err error) {
	defer obs.Time(ctx, "routestore.Save")(&err)

	body := saveRequest{
		Name:           req.Name,
		DistanceKm:     req.DistanceKm,
		DurationMin:    req.DurationMin,
		Route:          req.Route,
		RecipientEmail: req.RecipientEmail,
		MapImageBase64: req.MapImageBase64,
	}

	resp, err := s.post(ctx, session, "/save_route_with_map", body)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return nil, err
		}
		return nil, &domain.PersistenceError{Err: err}
	}
	defer resp.Body.Close()

	var decoded saveResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &domain.PersistenceError{Err: fmt.Errorf("decode save response: %w", err)}
	}
	if decoded.ID == 0 {
		return nil, &domain.PersistenceError{Err: errors.New("save response carries no id")}
	}

	return &domain.SavedRoute{
		ID:          decoded.ID,
		Name:        req.Name,
		DistanceKm:  req.DistanceKm,
		DurationMin: req.DurationMin,
		Route:       req.Route,
	}, nil
}

// Notify asks the provider to email the persisted route.
func (s *HTTPRouteStore) Notify(
	ctx context.Context,
	session auth.Session,
	routeID int64,
	recipientEmail string,
) (err error) {
	defer obs.Time(ctx, "routestore.Notify")(&err)

	body := notifyRequest{RouteID: routeID, RecipientEmail: recipientEmail}

	resp, err := s.post(ctx, session, "/email_route/", body)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return err
		}
		return &domain.NotificationError{RouteID: routeID, Err: err}
	}
	defer resp.Body.Close()

	var decoded notifyResponse
	_ = json.NewDecoder(resp.Body).Decode(&decoded)

	return nil
}

func (s *HTTPRouteStore) post(ctx context.Context, session auth.Session, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := s.session.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, domain.ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		detail := readDetail(resp)
		resp.Body.Close()
		if detail == "" {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}

	return resp, nil
}

// readDetail extracts the provider's error detail string when present.
func readDetail(resp *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Detail)
}
