package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// MapboxDirections implements the DirectionsProvider port using the Mapbox
// Directions API with the driving profile. Geometry is always requested as
// GeoJSON so the full path can be drawn.
type MapboxDirections struct {
	session *http.Client
	token   string
	baseURL string
	profile string
}

func NewMapboxDirections(token string) (*MapboxDirections, error) {
	if token == "" {
		return nil, errors.New("Mapbox token is empty")
	}

	return &MapboxDirections{
		session: &http.Client{Timeout: 15 * time.Second},
		token:   token,
		baseURL: "https://api.mapbox.com",
		profile: "driving",
	}, nil
}

type directionsResponse struct {
	Routes []struct {
		Geometry *geojson.Geometry `json:"geometry"`
		Distance float64           `json:"distance"`
		Duration float64           `json:"duration"`
	} `json:"routes"`
}

// Route fetches the drivable path over the ordered coordinate sequence.
func (m *MapboxDirections) Route(ctx context.Context, points []domain.Coordinates) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "mapbox.Route")(&err)

	if len(points) < 2 {
		return nil, errors.New("route: at least two points are required")
	}

	pairs := make([]string, 0, len(points))
	for _, p := range points {
		pairs = append(pairs,
			strconv.FormatFloat(p.Lon, 'f', -1, 64)+","+strconv.FormatFloat(p.Lat, 'f', -1, 64))
	}

	endpoint := fmt.Sprintf(
		"%s/directions/v5/mapbox/%s/%s",
		m.baseURL, m.profile, strings.Join(pairs, ";"),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("route: create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("geometries", "geojson")
	q.Set("overview", "full")
	q.Set("access_token", m.token)
	req.URL.RawQuery = q.Encode()

	resp, err := m.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("route: unexpected status: %d", resp.StatusCode)
	}

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("route: decode directions response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return nil, domain.ErrNoRoute
	}

	best := decoded.Routes[0]
	geometry, err := lineCoordinates(best.Geometry)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}

	return &domain.Trip{
		Geometry:        geometry,
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
	}, nil
}

func lineCoordinates(g *geojson.Geometry) ([]domain.Coordinates, error) {
	if g == nil {
		return nil, errors.New("response carries no geometry")
	}

	line, ok := g.Geometry().(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("unexpected geometry type %q", g.Type)
	}

	out := make([]domain.Coordinates, 0, len(line))
	for _, pt := range line {
		out = append(out, domain.Coordinates{Lon: pt.Lon(), Lat: pt.Lat()})
	}

	return out, nil
}
