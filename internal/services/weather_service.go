package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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
	DefaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"
	DefaultWeatherTTL   = 30 * time.Minute
)

type WeatherServiceInterface interface {
	Forecast(ctx context.Context, city string, days int) utils.FetchResult[[]response_models.ForecastDay]
}

type WeatherService struct {
	forecastURL string
	geocoder    GeocodeServiceInterface
	http        *http.Client
	cfg         OutboundConfig
	cache       mem.Cache[[]response_models.ForecastDay]
	ttl         time.Duration
	logger      *zap.Logger
}

func NewWeatherService(
	forecastURL string,
	geocoder GeocodeServiceInterface,
	cache mem.Cache[[]response_models.ForecastDay],
	ttl time.Duration,
	cfg OutboundConfig,
	logger *zap.Logger,
) WeatherServiceInterface {
	if forecastURL == "" {
		forecastURL = DefaultOpenMeteoURL
	}
	if ttl <= 0 {
		ttl = DefaultWeatherTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults("open-meteo", 20*time.Second)
	return &WeatherService{
		forecastURL: forecastURL,
		geocoder:    geocoder,
		http:        cfg.httpClient(),
		cfg:         cfg,
		cache:       cache,
		ttl:         ttl,
		logger:      logger,
	}
}

type openMeteoResponse struct {
	Daily struct {
		Time          []string   `json:"time"`
		TempMax       []*float64 `json:"temperature_2m_max"`
		TempMin       []*float64 `json:"temperature_2m_min"`
		Precipitation []*float64 `json:"precipitation_sum"`
		WeatherCode   []*int     `json:"weathercode"`
	} `json:"daily"`
}

// Forecast returns up to days daily forecasts, ascending by date. A city the
// geocoder does not know yields an empty, cached forecast.
func (w *WeatherService) Forecast(ctx context.Context, city string, days int) utils.FetchResult[[]response_models.ForecastDay] {
	city = strings.TrimSpace(city)
	key := mem.Key("weather", city, strconv.Itoa(days))

	if cached, ok := w.cache.Get(key); ok {
		return utils.Ok(cached)
	}

	coords, err := w.geocoder.Locate(ctx, city)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			w.cache.Set(key, []response_models.ForecastDay{}, w.ttl)
			return utils.Ok([]response_models.ForecastDay{})
		}
		return utils.Fail[[]response_models.ForecastDay](err)
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	q.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min,precipitation_sum")
	q.Set("timezone", "auto")

	status, body, err := getWithRetry(ctx, w.http, w.cfg, w.forecastURL+"?"+q.Encode())
	if err != nil {
		return utils.Fail[[]response_models.ForecastDay](err)
	}
	if status/100 != 2 {
		return utils.Fail[[]response_models.ForecastDay](
			fmt.Errorf("open-meteo: bad status %d: %w", status, utils.ErrUpstreamUnavailable))
	}

	var payload openMeteoResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return utils.Fail[[]response_models.ForecastDay](fmt.Errorf("open-meteo decode: %w", err))
	}

	out := toForecastDays(payload, days)
	w.cache.Set(key, out, w.ttl)
	return utils.Ok(out)
}

func toForecastDays(p openMeteoResponse, days int) []response_models.ForecastDay {
	d := p.Daily
	n := min(days, len(d.Time))
	if n < 0 {
		n = 0
	}

	out := make([]response_models.ForecastDay, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, response_models.ForecastDay{
			Date:        d.Time[i],
			TempMax:     floatAt(d.TempMax, i),
			TempMin:     floatAt(d.TempMin, i),
			RainMM:      floatAt(d.Precipitation, i),
			WeatherCode: intAt(d.WeatherCode, i),
		})
	}
	return out
}

func floatAt(vs []*float64, i int) float64 {
	if i < len(vs) && vs[i] != nil {
		return *vs[i]
	}
	return 0
}

func intAt(vs []*int, i int) int {
	if i < len(vs) && vs[i] != nil {
		return *vs[i]
	}
	return 0
}
