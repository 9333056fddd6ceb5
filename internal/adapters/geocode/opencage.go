package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"trip-route-service/internal/adapters/cache"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"
)

const (
	resolveLimit = 1
	suggestLimit = 5
)

// OpenCageGeocoder implements the Geocoder port using the OpenCage
// forward-geocoding API.
//
// It coordinates:
//   - Address normalization
//   - A persistent geocode cache for single resolutions
//   - A short-TTL suggestion cache
//
// Every provider call is single-shot: a failed resolution aborts the
// caller's run, a failed suggestion lookup yields an empty list.
type OpenCageGeocoder struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	geocodeCache *cache.SQLGeocodeCache
	suggestCache *cache.RedisSuggestCache
}

func NewOpenCageGeocoder(
	apiKey string,
	geocodeCache *cache.SQLGeocodeCache,
	suggestCache *cache.RedisSuggestCache,
) (*OpenCageGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("OpenCage api key is empty")
	}

	return &OpenCageGeocoder{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://api.opencagedata.com/geocode/v1/json",
		geocodeCache: geocodeCache,
		suggestCache: suggestCache,
	}, nil
}

type opencageResponse struct {
	Results []struct {
		Formatted string `json:"formatted"`
		Geometry  struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *OpenCageGeocoder) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Resolve returns the first candidate's coordinates for the address.
// Empty input is rejected before any network call; no result is reported
// as found=false, not as an error.
func (g *OpenCageGeocoder) Resolve(ctx context.Context, address string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "opencage.Resolve")(&err)

	norm := g.normalize(address)
	if norm == "" {
		return domain.Coordinates{}, false, errors.New("resolve: address must be non-empty")
	}

	// Check the persistent cache before issuing an external call.
	if g.geocodeCache != nil {
		coords, ok, err := g.geocodeCache.Get(ctx, norm)
		if err != nil {
			return domain.Coordinates{}, false, fmt.Errorf("resolve: geocode cache: %w", err)
		}
		if ok {
			return coords, true, nil
		}
	}

	decoded, err := g.query(ctx, norm, resolveLimit)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("resolve %q: %w", norm, err)
	}

	if len(decoded.Results) == 0 {
		return domain.Coordinates{}, false, nil
	}

	geom := decoded.Results[0].Geometry
	coords := domain.Coordinates{Lon: geom.Lng, Lat: geom.Lat}

	if g.geocodeCache != nil {
		if err := g.geocodeCache.Put(ctx, norm, coords); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coords, true, nil
}

// Suggest returns up to five candidates for the query. It tolerates being
// invoked on every keystroke and never fails: any provider error yields an
// empty list.
func (g *OpenCageGeocoder) Suggest(ctx context.Context, query string) []domain.Suggestion {
	norm := g.normalize(query)
	if norm == "" {
		return []domain.Suggestion{}
	}

	if g.suggestCache != nil {
		cached, ok, err := g.suggestCache.Get(ctx, norm)
		if err != nil {
			log.Printf("suggest cache read failed: %v", err)
		} else if ok {
			return cached
		}
	}

	decoded, err := g.query(ctx, norm, suggestLimit)
	if err != nil {
		log.Printf("suggest %q failed: %v", norm, err)
		return []domain.Suggestion{}
	}

	out := make([]domain.Suggestion, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		out = append(out, domain.Suggestion{
			Label:       r.Formatted,
			Coordinates: domain.Coordinates{Lon: r.Geometry.Lng, Lat: r.Geometry.Lat},
		})
	}

	if g.suggestCache != nil {
		if err := g.suggestCache.Put(ctx, norm, out); err != nil {
			log.Printf("suggest cache write failed: %v", err)
		}
	}

	return out
}

func (g *OpenCageGeocoder) query(ctx context.Context, text string, limit int) (*opencageResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	q := url.Values{}
	q.Set("q", text)
	q.Set("key", g.apiKey)
	q.Set("limit", strconv.Itoa(limit))
	req.URL.RawQuery = q.Encode()

	resp, err := g.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded opencageResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	return &decoded, nil
}
