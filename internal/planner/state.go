package planner

import (
	"context"
	"slices"

	"travelplanner/internal/models/response_models"
	"travelplanner/pkg/utils"
)

// Collaborators the research stage reads from. Each applies its own caching
// and retry policy and reports failure through the FetchResult.
type (
	SummaryProvider interface {
		Summary(ctx context.Context, name string) utils.FetchResult[string]
	}

	PlaceSearcher interface {
		SearchPlaces(ctx context.Context, name string, category response_models.PlaceCategory, limit int) utils.FetchResult[[]response_models.Place]
	}

	WeatherProvider interface {
		Forecast(ctx context.Context, name string, days int) utils.FetchResult[[]response_models.ForecastDay]
	}
)

// Input is set once before the pipeline runs and never changed by a stage.
type Input struct {
	Origin      string
	Destination string
	Days        int
	Budget      int
	Preferences string
}

type ResearchData struct {
	Summary     string
	Attractions []response_models.Place
	Restaurants []response_models.Place
	Weather     []response_models.ForecastDay
}

type BudgetBreakdown struct {
	Categories response_models.BudgetCategories
	Text       string
}

// GeneratedText is the output of a stage backed by the text generator.
// Warning is set when Text is a placeholder standing in for a failed call.
type GeneratedText struct {
	Text    string
	Warning string
}

// PlanState is threaded by value through the stages. Fields a stage has not
// produced yet hold their zero value.
type PlanState struct {
	Input Input

	Research ResearchData

	TransitPlan string
	Itinerary   string
	Budget      BudgetBreakdown

	Warnings []string

	Final *response_models.TripPlan
}

func NewPlanState(in Input) PlanState {
	return PlanState{Input: in}
}

// Clone returns a copy that shares no slices with s.
func (s PlanState) Clone() PlanState {
	out := s
	out.Research.Attractions = slices.Clone(s.Research.Attractions)
	out.Research.Restaurants = slices.Clone(s.Research.Restaurants)
	out.Research.Weather = slices.Clone(s.Research.Weather)
	out.Warnings = slices.Clone(s.Warnings)
	if s.Final != nil {
		final := cloneTripPlan(*s.Final)
		out.Final = &final
	}
	return out
}

func cloneTripPlan(p response_models.TripPlan) response_models.TripPlan {
	p.TopAttractions = slices.Clone(p.TopAttractions)
	p.Restaurants = slices.Clone(p.Restaurants)
	p.Weather = slices.Clone(p.Weather)
	p.Warnings = slices.Clone(p.Warnings)
	return p
}
