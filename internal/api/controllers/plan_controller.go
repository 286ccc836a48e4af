package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"travelplanner/internal/models/request_models"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"
)

type PlanController struct {
	tripService   services.TripPlanServiceInterface
	providerLabel string
}

func NewPlanController(tripService services.TripPlanServiceInterface, providerLabel string) *PlanController {
	return &PlanController{
		tripService:   tripService,
		providerLabel: providerLabel,
	}
}

func (pc *PlanController) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": fmt.Sprintf("Travel Planner AI Backend Running (%s Mode)", pc.providerLabel),
	})
}

func (pc *PlanController) HealthHandler(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"provider": pc.providerLabel}, "ok")
}

func (pc *PlanController) PlanTripHandler(c *gin.Context) {
	// 1. Bind body; a missing body is the same as an empty one
	var req request_models.PlanTripRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	// 2. Call service layer
	plan, err := pc.tripService.PlanTrip(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	// 3. Respond with success
	utils.RespondSuccess(c, plan, "Trip planned successfully")
}
