package planner_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"travelplanner/internal/config"
	"travelplanner/internal/planner"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"
)

var Module = fx.Provide(provideOrchestrator, provideTripPlanService)

func provideOrchestrator(
	cfg config.Config,
	wiki services.WikiServiceInterface,
	places services.PlaceServiceInterface,
	weather services.WeatherServiceInterface,
	gen utils.TextGenerator,
	logger *zap.Logger,
) *planner.Orchestrator {
	return planner.NewOrchestrator(wiki, places, weather, gen,
		planner.OrchestratorConfig{Currency: cfg.Data.Currency},
		logger.Named("planner"))
}

func provideTripPlanService(o *planner.Orchestrator, logger *zap.Logger) services.TripPlanServiceInterface {
	return services.NewTripPlanService(o, logger.Named("trip"))
}
