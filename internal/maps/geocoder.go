// README: Place-name geocoding over the Google Maps Geocoding API with a result cache.
package maps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// Coordinates is a WGS84 point. The zero value doubles as the "not found" sentinel on the wire.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type geocodeAPI interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

type cached struct {
	coords Coordinates
	found  bool
}

// Geocoder resolves free-text places to coordinates. Misses are cached briefly, hits for a day.
type Geocoder struct {
	client geocodeAPI
	cache  *cache.Cache
	log    *zap.Logger
}

// NewGeocoder creates a Geocoder with the given API Key.
func NewGeocoder(apiKey string, logger *zap.Logger) (*Geocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return newGeocoder(client, logger), nil
}

func newGeocoder(client geocodeAPI, logger *zap.Logger) *Geocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Geocoder{client: client, cache: cache.New(24*time.Hour, time.Hour), log: logger}
}

const missTTL = 5 * time.Minute

// Lookup returns the first match for place. Any failure yields (Coordinates{}, false).
func (g *Geocoder) Lookup(ctx context.Context, place string) (Coordinates, bool) {
	key := strings.ToLower(strings.TrimSpace(place))
	if key == "" {
		return Coordinates{}, false
	}
	if v, ok := g.cache.Get(key); ok {
		c := v.(cached)
		return c.coords, c.found
	}

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: place})
	if err != nil {
		// Transport failures are not cached so the next lookup retries.
		g.log.Warn("geocode failed", zap.String("place", place), zap.Error(err))
		return Coordinates{}, false
	}
	if len(results) == 0 {
		g.cache.Set(key, cached{}, missTTL)
		return Coordinates{}, false
	}
	loc := results[0].Geometry.Location
	c := Coordinates{Lat: loc.Lat, Lon: loc.Lng}
	g.cache.Set(key, cached{coords: c, found: true}, cache.DefaultExpiration)
	return c, true
}
