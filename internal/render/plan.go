// Package render turns a planned trip into presentation-agnostic map
// instructions. The orchestrator stays free of any map library; a consumer
// replaces its whole marker/layer set with each Plan value, so no frame can
// show a mixture of old and new markers.
package render

import (
	"trip-route-service/internal/domain"
)

// A labeled point in visiting order ("Pickup", "Stop 1", ..., "Destination").
type Waypoint struct {
	Label string
	Point domain.ResolvedPoint
}

type Marker struct {
	Label       string
	Coordinates domain.Coordinates
	Popup       string
	Emphasized  bool
}

// Plan is the complete marker and line set for one run.
type Plan struct {
	Markers []Marker
	Line    []domain.Coordinates
}

// BuildPlan lays out one marker per waypoint, an emphasized marker for the
// nearest stop, and the drivable path geometry.
func BuildPlan(waypoints []Waypoint, nearest *domain.StopRanking, geometry []domain.Coordinates) Plan {
	markers := make([]Marker, 0, len(waypoints)+1)
	for _, wp := range waypoints {
		markers = append(markers, Marker{
			Label:       wp.Label,
			Coordinates: wp.Point.Coordinates,
			Popup:       wp.Label + ": " + wp.Point.Address,
		})
	}

	if nearest != nil {
		markers = append(markers, Marker{
			Label:       "Nearest Stop",
			Coordinates: nearest.Coordinates,
			Popup:       "Nearest Stop: " + nearest.Address,
			Emphasized:  true,
		})
	}

	return Plan{Markers: markers, Line: geometry}
}
