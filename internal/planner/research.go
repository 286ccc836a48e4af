package planner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"travelplanner/internal/models/response_models"
)

const (
	AttractionLimit = 12
	RestaurantLimit = 10
)

// ResearchStage gathers the city summary, points of interest and forecast.
type ResearchStage struct {
	wiki    SummaryProvider
	places  PlaceSearcher
	weather WeatherProvider
	logger  *zap.Logger
}

func NewResearchStage(wiki SummaryProvider, places PlaceSearcher, weather WeatherProvider, logger *zap.Logger) *ResearchStage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResearchStage{
		wiki:    wiki,
		places:  places,
		weather: weather,
		logger:  logger,
	}
}

func MissingSummary(city string) string {
	return fmt.Sprintf("No Wikipedia summary found for %s.", city)
}

func (r *ResearchStage) Run(ctx context.Context, in Input) ResearchData {
	city := strings.TrimSpace(in.Destination)

	summaryRes := r.wiki.Summary(ctx, city)
	if !summaryRes.OK() {
		r.logger.Warn("city summary unavailable", zap.String("city", city), zap.Error(summaryRes.Err))
	}
	summary := summaryRes.OrElse("")
	if strings.TrimSpace(summary) == "" {
		summary = MissingSummary(city)
	}

	return ResearchData{
		Summary:     summary,
		Attractions: r.searchPlaces(ctx, city, response_models.CategoryAttraction, AttractionLimit),
		Restaurants: r.searchPlaces(ctx, city, response_models.CategoryRestaurant, RestaurantLimit),
		Weather:     r.forecast(ctx, city, in.Days),
	}
}

func (r *ResearchStage) searchPlaces(ctx context.Context, city string, category response_models.PlaceCategory, limit int) []response_models.Place {
	res := r.places.SearchPlaces(ctx, city, category, limit)
	if !res.OK() {
		r.logger.Warn("place search failed",
			zap.String("city", city),
			zap.String("category", string(category)),
			zap.Error(res.Err))
		return []response_models.Place{}
	}
	if res.Value == nil {
		return []response_models.Place{}
	}
	return res.Value
}

func (r *ResearchStage) forecast(ctx context.Context, city string, days int) []response_models.ForecastDay {
	res := r.weather.Forecast(ctx, city, days)
	if !res.OK() {
		r.logger.Warn("weather lookup failed", zap.String("city", city), zap.Error(res.Err))
		return []response_models.ForecastDay{}
	}
	if res.Value == nil {
		return []response_models.ForecastDay{}
	}
	return res.Value
}
