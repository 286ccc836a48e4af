package controllers_fx

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"travelplanner/internal/api"
	"travelplanner/internal/api/controllers"
	"travelplanner/internal/config"
	"travelplanner/internal/services"
)

var Module = fx.Options(
	fx.Provide(providePlanController),
	fx.Provide(provideRouter))

func providePlanController(cfg config.Config, tripService services.TripPlanServiceInterface) *controllers.PlanController {
	return controllers.NewPlanController(tripService, cfg.ProviderLabel())
}

func provideRouter(cfg config.Config, planController *controllers.PlanController) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(api.RouterConfig{
		JWTSecret:  cfg.AuthJWTSecret,
		RequestLog: true,
	}, planController)
}
