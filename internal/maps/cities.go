// README: City name canonicalization via the Google Maps Geocoding API.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// CityResolver turns user-typed city names into their canonical form
// ("marseile" → "Marseille") for presentation. It is an optional
// collaborator: lookups that fail keep the raw name, so booking flow
// never depends on it.
type CityResolver struct {
	client *maps.Client
}

// NewCityResolver creates a resolver with the given API key.
func NewCityResolver(apiKey string) (*CityResolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &CityResolver{client: client}, nil
}

// Canonicalize geocodes the city and returns the locality's long name. Any
// error or empty result returns the input unchanged.
func (r *CityResolver) Canonicalize(ctx context.Context, city string) string {
	if r == nil || city == "" {
		return city
	}
	results, err := r.client.Geocode(ctx, &maps.GeocodingRequest{Address: city})
	if err != nil || len(results) == 0 {
		return city
	}
	for _, comp := range results[0].AddressComponents {
		for _, t := range comp.Types {
			if t == "locality" && comp.LongName != "" {
				return comp.LongName
			}
		}
	}
	return city
}
