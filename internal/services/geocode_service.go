package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/utils"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"
	DefaultGeocodeTTL   = 30 * time.Minute
)

type Coordinates struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

type GeocodeServiceInterface interface {
	// Locate resolves a city name to coordinates. Unknown names return an
	// error wrapping ErrNotFound.
	Locate(ctx context.Context, city string) (Coordinates, error)
}

// GeoEntry is what the geocoder caches. Found is false for names Nominatim
// did not know.
type GeoEntry struct {
	Coordinates
	Found bool
}

type GeocodeService struct {
	searchURL string
	http      *http.Client
	cfg       OutboundConfig
	cache     mem.Cache[GeoEntry]
	ttl       time.Duration
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewGeocodeService builds a Nominatim client. Requests are limited to one
// per second across the process.
func NewGeocodeService(searchURL string, cache mem.Cache[GeoEntry], ttl time.Duration, limiter *rate.Limiter, cfg OutboundConfig, logger *zap.Logger) GeocodeServiceInterface {
	if searchURL == "" {
		searchURL = DefaultNominatimURL
	}
	if ttl <= 0 {
		ttl = DefaultGeocodeTTL
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(time.Second), 1)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults("nominatim", 20*time.Second)
	return &GeocodeService{
		searchURL: searchURL,
		http:      cfg.httpClient(),
		cfg:       cfg,
		cache:     cache,
		ttl:       ttl,
		limiter:   limiter,
		logger:    logger,
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (g *GeocodeService) Locate(ctx context.Context, city string) (Coordinates, error) {
	city = strings.TrimSpace(city)
	key := mem.Key("coords", city)

	if entry, ok := g.cache.Get(key); ok {
		if !entry.Found {
			return Coordinates{}, fmt.Errorf("geocode %q: %w", city, utils.ErrNotFound)
		}
		return entry.Coordinates, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return Coordinates{}, fmt.Errorf("geocode %q: %w", city, err)
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("format", "json")
	q.Set("limit", "1")

	status, body, err := getWithRetry(ctx, g.http, g.cfg, g.searchURL+"?"+q.Encode())
	if err != nil {
		return Coordinates{}, err
	}
	if status/100 != 2 {
		return Coordinates{}, fmt.Errorf("geocode %q: bad status %d: %w", city, status, utils.ErrUpstreamUnavailable)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return Coordinates{}, fmt.Errorf("geocode decode: %w", err)
	}
	if len(results) == 0 {
		g.cache.Set(key, GeoEntry{}, g.ttl)
		return Coordinates{}, fmt.Errorf("geocode %q: %w", city, utils.ErrNotFound)
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return Coordinates{}, fmt.Errorf("geocode %q: bad coordinates %q,%q", city, results[0].Lat, results[0].Lon)
	}

	coords := Coordinates{Lat: lat, Lon: lon, DisplayName: results[0].DisplayName}
	g.cache.Set(key, GeoEntry{Coordinates: coords, Found: true}, g.ttl)
	g.logger.Debug("geocoded city", zap.String("city", city), zap.Float64("lat", lat), zap.Float64("lon", lon))
	return coords, nil
}
