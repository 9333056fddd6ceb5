package geocode

import (
	"context"
	"trip-route-service/internal/domain"
)

type MockPoint struct {
	Address  string
	Lon, Lat float64
}

// MockGeocoder resolves only the addresses it was seeded with.
type MockGeocoder struct {
	m map[string]domain.Coordinates
}

func NewMockGeocoder(points []MockPoint) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(points))
	for _, p := range points {
		m[p.Address] = domain.Coordinates{Lon: p.Lon, Lat: p.Lat}
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Resolve(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	coords, ok := g.m[address]
	return coords, ok, nil
}

func (g *MockGeocoder) Suggest(ctx context.Context, query string) []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(g.m))
	for addr, coords := range g.m {
		out = append(out, domain.Suggestion{Label: addr, Coordinates: coords})
		if len(out) == 5 {
			break
		}
	}
	return out
}
