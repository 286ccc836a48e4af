package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"travelplanner/internal/models/request_models"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/planner"
	"travelplanner/pkg/utils"
)

const (
	DefaultTripDays    = 1
	DefaultTripBudget  = 5000
	DefaultPreferences = planner.DefaultPreferences
)

// TripPlanner runs the planning pipeline for validated input.
type TripPlanner interface {
	Run(ctx context.Context, in planner.Input) (response_models.TripPlan, error)
}

type TripPlanServiceInterface interface {
	PlanTrip(ctx context.Context, req request_models.PlanTripRequest) (response_models.TripPlan, error)
}

type TripPlanService struct {
	planner TripPlanner
	logger  *zap.Logger
}

func NewTripPlanService(p TripPlanner, logger *zap.Logger) TripPlanServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TripPlanService{planner: p, logger: logger}
}

// PlanTrip validates req, fills defaults and runs the pipeline. A started run
// is not cancelled when the caller goes away.
func (s *TripPlanService) PlanTrip(ctx context.Context, req request_models.PlanTripRequest) (response_models.TripPlan, error) {
	in, err := BuildInput(req)
	if err != nil {
		return response_models.TripPlan{}, err
	}

	s.logger.Info("planning trip",
		zap.String("city", in.Destination),
		zap.String("from_city", in.Origin),
		zap.Int("days", in.Days),
		zap.Int("budget", in.Budget))

	plan, err := s.planner.Run(context.WithoutCancel(ctx), in)
	if err != nil {
		return response_models.TripPlan{}, err
	}
	return plan, nil
}

// BuildInput applies request defaults and rejects requests that cannot be
// planned.
func BuildInput(req request_models.PlanTripRequest) (planner.Input, error) {
	in := planner.Input{
		Origin:      strings.TrimSpace(req.FromCity),
		Destination: strings.TrimSpace(req.City),
		Days:        DefaultTripDays,
		Budget:      DefaultTripBudget,
		Preferences: DefaultPreferences,
	}

	if in.Destination == "" {
		return planner.Input{}, utils.ErrDestinationRequired
	}
	if req.Days != nil {
		in.Days = *req.Days
	}
	if in.Days < 1 {
		return planner.Input{}, utils.ErrInvalidDays
	}
	if req.Budget != nil {
		in.Budget = *req.Budget
	}
	if in.Budget < 0 {
		return planner.Input{}, utils.ErrInvalidBudget
	}
	if req.Preferences != nil && strings.TrimSpace(*req.Preferences) != "" {
		in.Preferences = strings.TrimSpace(*req.Preferences)
	}
	return in, nil
}
