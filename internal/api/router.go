package api

import (
	"github.com/gin-gonic/gin"
	"travelplanner/internal/api/controllers"
	"travelplanner/pkg/middleware"
)

type RouterConfig struct {
	// JWTSecret protects POST /plan when set.
	JWTSecret string
	// RequestLog enables gin's access log.
	RequestLog bool
}

func NewRouter(cfg RouterConfig, planController *controllers.PlanController) *gin.Engine {
	r := gin.New()
	if cfg.RequestLog {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, cfg, planController)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg RouterConfig, planController *controllers.PlanController) {
	r.GET("/", planController.StatusHandler)
	r.GET("/healthz", planController.HealthHandler)

	planHandlers := []gin.HandlerFunc{}
	if cfg.JWTSecret != "" {
		planHandlers = append(planHandlers, middleware.JWTAuthMiddleware([]byte(cfg.JWTSecret)))
	}
	planHandlers = append(planHandlers, planController.PlanTripHandler)
	r.POST("/plan", planHandlers...)
}
