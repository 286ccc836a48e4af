package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"travelplanner/internal/models/response_models"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/utils"
)

const (
	DefaultPlacesTTL = 30 * time.Minute
	FallbackRadiusM  = 20000
)

var DefaultOverpassMirrors = []string{
	"https://overpass.kumi.systems/api/interpreter",
	"https://overpass-api.de/api/interpreter",
}

type PlaceServiceInterface interface {
	SearchPlaces(ctx context.Context, city string, category response_models.PlaceCategory, limit int) utils.FetchResult[[]response_models.Place]
}

type PlaceService struct {
	mirrors  []string
	geocoder GeocodeServiceInterface
	http     *http.Client
	cfg      OutboundConfig
	cache    mem.Cache[[]response_models.Place]
	ttl      time.Duration
	logger   *zap.Logger
}

func NewPlaceService(
	mirrors []string,
	geocoder GeocodeServiceInterface,
	cache mem.Cache[[]response_models.Place],
	ttl time.Duration,
	cfg OutboundConfig,
	logger *zap.Logger,
) PlaceServiceInterface {
	if len(mirrors) == 0 {
		mirrors = DefaultOverpassMirrors
	}
	if ttl <= 0 {
		ttl = DefaultPlacesTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults("overpass", 45*time.Second)
	return &PlaceService{
		mirrors:  mirrors,
		geocoder: geocoder,
		http:     cfg.httpClient(),
		cfg:      cfg,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

// SearchPlaces looks the city up as an OSM area first and falls back to a
// radius search around its geocoded centre when the area yields nothing.
// Empty results are cached; transport failures are not.
func (p *PlaceService) SearchPlaces(ctx context.Context, city string, category response_models.PlaceCategory, limit int) utils.FetchResult[[]response_models.Place] {
	city = strings.TrimSpace(city)
	key := mem.Key(city, string(category), strconv.Itoa(limit))

	if cached, ok := p.cache.Get(key); ok {
		return utils.Ok(cached)
	}

	data, areaErr := p.callOverpass(ctx, AreaQuery(city, category))
	if areaErr == nil {
		if places := parsePlaces(data, category, limit); len(places) > 0 {
			p.cache.Set(key, places, p.ttl)
			return utils.Ok(places)
		}
	} else {
		p.logger.Warn("overpass area search failed", zap.String("city", city), zap.Error(areaErr))
	}

	coords, err := p.geocoder.Locate(ctx, city)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) && areaErr == nil {
			p.cache.Set(key, []response_models.Place{}, p.ttl)
			return utils.Ok([]response_models.Place{})
		}
		if areaErr != nil {
			return utils.Fail[[]response_models.Place](errors.Join(areaErr, err))
		}
		return utils.Fail[[]response_models.Place](err)
	}

	data, err = p.callOverpass(ctx, RadiusQuery(category, coords.Lat, coords.Lon, FallbackRadiusM))
	if err != nil {
		return utils.Fail[[]response_models.Place](err)
	}

	places := parsePlaces(data, category, limit)
	p.cache.Set(key, places, p.ttl)
	return utils.Ok(places)
}

// callOverpass tries each mirror in order. A mirror answering with something
// other than JSON is abandoned without further retries.
func (p *PlaceService) callOverpass(ctx context.Context, query string) (*overpassResponse, error) {
	form := url.Values{}
	form.Set("data", query)
	encoded := form.Encode()

	var errs []error
	for _, mirror := range p.mirrors {
		resp, err := p.cfg.Retry.Do(ctx, func(ctx context.Context) (*http.Response, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, mirror, strings.NewReader(encoded))
			if err != nil {
				return nil, err
			}
			req.Header.Set("User-Agent", p.cfg.UserAgent)
			req.Header.Set("Accept", "application/json")
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			return p.http.Do(req)
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", mirror, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: read body: %w", mirror, err))
			continue
		}

		if !bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
			preview := string(body)
			if len(preview) > 200 {
				preview = preview[:200]
			}
			p.logger.Warn("overpass returned non-JSON",
				zap.String("mirror", mirror),
				zap.Int("status", resp.StatusCode),
				zap.String("preview", preview))
			errs = append(errs, fmt.Errorf("%s: non-JSON response (status %d)", mirror, resp.StatusCode))
			continue
		}

		var out overpassResponse
		if err := json.Unmarshal(body, &out); err != nil {
			errs = append(errs, fmt.Errorf("%s: decode: %w", mirror, err))
			continue
		}
		return &out, nil
	}

	return nil, fmt.Errorf("overpass: %w: %w", utils.ErrUpstreamUnavailable, errors.Join(errs...))
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

func (e overpassElement) position() (float64, float64, bool) {
	if e.Lat != nil && e.Lon != nil {
		return *e.Lat, *e.Lon, true
	}
	if e.Center != nil && e.Center.Lat != nil && e.Center.Lon != nil {
		return *e.Center.Lat, *e.Center.Lon, true
	}
	return 0, 0, false
}

// parsePlaces keeps named elements that carry a position, either their own or
// their centre, then dedupes and truncates to limit.
func parsePlaces(data *overpassResponse, category response_models.PlaceCategory, limit int) []response_models.Place {
	if data == nil {
		return []response_models.Place{}
	}
	places := make([]response_models.Place, 0, len(data.Elements))
	for _, el := range data.Elements {
		name := strings.TrimSpace(el.Tags["name"])
		if name == "" {
			continue
		}
		lat, lon, ok := el.position()
		if !ok {
			continue
		}
		places = append(places, response_models.Place{
			Name:      name,
			Category:  category,
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return DedupePlaces(places, limit)
}

// DedupePlaces drops places whose trimmed, lower-cased name was already seen,
// keeping the first occurrence, and returns at most limit entries.
func DedupePlaces(places []response_models.Place, limit int) []response_models.Place {
	seen := make(map[string]struct{}, len(places))
	out := make([]response_models.Place, 0, len(places))
	for _, p := range places {
		if limit > 0 && len(out) == limit {
			break
		}
		k := strings.ToLower(strings.TrimSpace(p.Name))
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

func AreaQuery(city string, category response_models.PlaceCategory) string {
	name := escapeOverpass(city)
	var q strings.Builder
	q.WriteString("[out:json][timeout:30];\n")
	q.WriteString("(\n")
	fmt.Fprintf(&q, "  area[\"boundary\"=\"administrative\"][\"name\"=\"%s\"]->.searchArea;\n", name)
	fmt.Fprintf(&q, "  area[\"name\"=\"%s\"]->.searchArea;\n", name)
	q.WriteString(");\n")
	q.WriteString(tagQuery(category, "(area.searchArea)"))
	q.WriteString("out center;\n")
	return q.String()
}

func RadiusQuery(category response_models.PlaceCategory, lat, lon float64, radiusM int) string {
	var q strings.Builder
	q.WriteString("[out:json][timeout:30];\n")
	q.WriteString(tagQuery(category, fmt.Sprintf("(around:%d,%f,%f)", radiusM, lat, lon)))
	q.WriteString("out center;\n")
	return q.String()
}

var (
	restaurantSelectors = []string{`["amenity"="restaurant"]`}
	attractionSelectors = []string{
		`["tourism"="attraction"]`,
		`["tourism"="museum"]`,
		`["historic"]`,
		`["natural"="beach"]`,
		`["leisure"="park"]`,
	}
)

func tagQuery(category response_models.PlaceCategory, loc string) string {
	selectors := attractionSelectors
	if category == response_models.CategoryRestaurant {
		selectors = restaurantSelectors
	}

	var q strings.Builder
	q.WriteString("(\n")
	for _, sel := range selectors {
		for _, kind := range []string{"node", "way", "relation"} {
			fmt.Fprintf(&q, "  %s%s%s;\n", kind, sel, loc)
		}
	}
	q.WriteString(");\n")
	return q.String()
}

func escapeOverpass(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
