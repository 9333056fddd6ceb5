package ports

import "context"

// Feature vector for the learned ETA model.
type ETAFeatures struct {
	DistanceKm   float64
	NumStops     int
	Weather      string
	TimeOfDay    string
	TrafficLevel string
}

// Optional extension: a learned ETA estimate in minutes, used purely as a
// summary annotation. Callers treat any failure as "no annotation".
type ETAPredictor interface {
	PredictETA(ctx context.Context, features ETAFeatures) (float64, error)
}
