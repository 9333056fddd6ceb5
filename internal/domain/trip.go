package domain

// A free-text address paired with the coordinates it resolved to.
// Created by the geocoder; consumed by everything downstream.
type ResolvedPoint struct {
	Address     string
	Coordinates Coordinates
}

// One autocomplete candidate for a partially typed address.
type Suggestion struct {
	Label       string
	Coordinates Coordinates
}

// A stop annotated with its great-circle distance from the pickup point.
// Rankings are built fresh per run, ordered ascending by distance, and
// never persisted on their own.
type StopRanking struct {
	Address            string
	Coordinates        Coordinates
	DistanceFromPickup float64 // kilometers
}

// The drivable route over a fixed ordered address sequence.
// Produced once per run by the directions provider and immutable after.
type Trip struct {
	OrderedAddresses []string
	Geometry         []Coordinates
	DistanceMeters   float64
	DurationSeconds  float64
}

// DistanceKm returns the trip distance in kilometers.
func (t *Trip) DistanceKm() float64 { return t.DistanceMeters / 1000 }

// DurationMinutes returns the trip duration in minutes.
func (t *Trip) DurationMinutes() float64 { return t.DurationSeconds / 60 }

// The optimizer's suggested visiting order plus optional annotations.
// ETASeconds is set when the provider returned a numeric eta; ETAText
// carries a preformatted eta string when it did not.
type OptimizationResult struct {
	OptimizedOrder []string
	LiveTraffic    string
	ETASeconds     *float64
	ETAText        string
}

// A route persisted by the external provider. The id is server-assigned
// and the record is never mutated client-side afterward.
type SavedRoute struct {
	ID          int64
	Name        string
	DistanceKm  float64
	DurationMin float64
	Route       []string
}
