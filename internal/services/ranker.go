package services

import (
	"sort"
	"trip-route-service/internal/domain"
)

// RankStops orders the resolved stops by great-circle distance from the
// pickup point, ascending. The sort is stable: stops at equal distance keep
// their original relative order. A route needs at least one stop, so an
// empty input reports domain.ErrNoStops.
func RankStops(pickup domain.Coordinates, stops []domain.ResolvedPoint) ([]domain.StopRanking, error) {
	if len(stops) == 0 {
		return nil, domain.ErrNoStops
	}

	out := make([]domain.StopRanking, 0, len(stops))
	for _, s := range stops {
		out = append(out, domain.StopRanking{
			Address:            s.Address,
			Coordinates:        s.Coordinates,
			DistanceFromPickup: domain.DistanceKm(pickup, s.Coordinates),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceFromPickup < out[j].DistanceFromPickup
	})

	return out, nil
}
