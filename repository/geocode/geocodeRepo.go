package geocoderepo

import "context"

type Result struct {
	Latitude  float64
	Longitude float64
}

// Repo resolves a listing's address (or city) to coordinates. Lookup
// returning (nil, nil) means the resolver is disabled or found nothing;
// callers treat geocoding as best effort.
type Repo interface {
	Lookup(ctx context.Context, place, country string) (*Result, error)
}
