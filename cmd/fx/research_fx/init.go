package research_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"travelplanner/internal/config"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/services"
	mem "travelplanner/pkg/memcache"
)

var Module = fx.Provide(
	provideWikiService, providePlaceService, provideWeatherService)

func provideWikiService(cfg config.Config, cache mem.Cache[string], out services.OutboundConfig, logger *zap.Logger) services.WikiServiceInterface {
	return services.NewWikiService(cfg.Data.WikiURL, cache, cfg.Cache.WikiTTL, out, logger.Named("wiki"))
}

func providePlaceService(
	cfg config.Config,
	geocoder services.GeocodeServiceInterface,
	cache mem.Cache[[]response_models.Place],
	out services.OutboundConfig,
	logger *zap.Logger,
) services.PlaceServiceInterface {
	return services.NewPlaceService(cfg.Data.OverpassMirrors, geocoder, cache, cfg.Cache.PlacesTTL, out, logger.Named("places"))
}

func provideWeatherService(
	cfg config.Config,
	geocoder services.GeocodeServiceInterface,
	cache mem.Cache[[]response_models.ForecastDay],
	out services.OutboundConfig,
	logger *zap.Logger,
) services.WeatherServiceInterface {
	return services.NewWeatherService(cfg.Data.OpenMeteoURL, geocoder, cache, cfg.Cache.WeatherTTL, out, logger.Named("weather"))
}
