package geocode_fx

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"travelplanner/internal/config"
	"travelplanner/internal/services"
	mem "travelplanner/pkg/memcache"
)

var Module = fx.Provide(
	provideOutboundConfig,
	provideGeocoder)

func provideOutboundConfig(cfg config.Config) services.OutboundConfig {
	return services.OutboundConfig{UserAgent: cfg.Data.UserAgent}
}

// Nominatim's usage policy allows one request per second.
func provideGeocoder(cfg config.Config, cache mem.Cache[services.GeoEntry], out services.OutboundConfig, logger *zap.Logger) services.GeocodeServiceInterface {
	limiter := rate.NewLimiter(rate.Every(time.Second), 1)
	return services.NewGeocodeService(cfg.Data.NominatimURL, cache, services.DefaultGeocodeTTL, limiter, out, logger.Named("geocode"))
}
