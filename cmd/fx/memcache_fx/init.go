package memcache_fx

import (
	"time"

	"go.uber.org/fx"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/services"
	mem "travelplanner/pkg/memcache"
)

const cleanupInterval = 10 * time.Minute

var Module = fx.Provide(
	provideSummaryCache,
	provideGeoCache,
	providePlaceCache,
	provideForecastCache)

func provideSummaryCache() mem.Cache[string] {
	return mem.NewTTLCache[string](cleanupInterval)
}

func provideGeoCache() mem.Cache[services.GeoEntry] {
	return mem.NewTTLCache[services.GeoEntry](cleanupInterval)
}

func providePlaceCache() mem.Cache[[]response_models.Place] {
	return mem.NewTTLCache[[]response_models.Place](cleanupInterval)
}

func provideForecastCache() mem.Cache[[]response_models.ForecastDay] {
	return mem.NewTTLCache[[]response_models.ForecastDay](cleanupInterval)
}
