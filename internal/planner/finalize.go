package planner

import (
	"slices"

	"travelplanner/internal/models/response_models"
)

// Finalize assembles the snapshot returned to clients. Fields never produced
// come out as empty strings, empty lists or zero.
func Finalize(s PlanState) response_models.TripPlan {
	return response_models.TripPlan{
		FromCity:    s.Input.Origin,
		City:        s.Input.Destination,
		Days:        s.Input.Days,
		Budget:      s.Input.Budget,
		Preferences: s.Input.Preferences,

		WikiSummary:    s.Research.Summary,
		TopAttractions: nonNil(s.Research.Attractions),
		Restaurants:    nonNil(s.Research.Restaurants),
		Weather:        nonNil(s.Research.Weather),

		TravelPlan:       s.TransitPlan,
		Itinerary:        s.Itinerary,
		BudgetBreakdown:  s.Budget.Text,
		BudgetCategories: s.Budget.Categories,

		Warnings: nonNil(s.Warnings),
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}
