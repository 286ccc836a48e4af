package planner

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"travelplanner/internal/models/response_models"
)

func TestResearchStage_CallsInOrder(t *testing.T) {
	rec := &recorder{}
	attractions, restaurants := jaipurPlaces()
	stage := NewResearchStage(
		&fakeWiki{rec: rec, summary: "Jaipur is the capital of Rajasthan."},
		&fakePlaces{rec: rec, attractions: attractions, restaurants: restaurants},
		&fakeWeather{rec: rec, days: jaipurForecast()},
		nil,
	)

	got := stage.Run(context.Background(), Input{Destination: "Jaipur", Days: 2})

	assert.Equal(t, []string{
		"summary:Jaipur",
		"places:attraction:12",
		"places:restaurant:10",
		"forecast:2",
	}, rec.list())
	assert.Equal(t, "Jaipur is the capital of Rajasthan.", got.Summary)
	assert.Equal(t, attractions, got.Attractions)
	assert.Equal(t, restaurants, got.Restaurants)
	assert.Len(t, got.Weather, 2)
}

func TestResearchStage_FailuresBecomeEmpty(t *testing.T) {
	stage := NewResearchStage(
		&fakeWiki{err: errUpstream},
		&fakePlaces{err: errUpstream},
		&fakeWeather{err: errUpstream},
		nil,
	)

	got := stage.Run(context.Background(), Input{Destination: "Atlantis", Days: 3})

	assert.Equal(t, "No Wikipedia summary found for Atlantis.", got.Summary)
	assert.NotNil(t, got.Attractions)
	assert.Empty(t, got.Attractions)
	assert.NotNil(t, got.Restaurants)
	assert.Empty(t, got.Restaurants)
	assert.NotNil(t, got.Weather)
	assert.Empty(t, got.Weather)
}

func TestResearchStage_BlankSummaryFallsBack(t *testing.T) {
	stage := NewResearchStage(&fakeWiki{summary: "  "}, &fakePlaces{}, &fakeWeather{}, nil)

	got := stage.Run(context.Background(), Input{Destination: "Pune", Days: 1})
	assert.Equal(t, MissingSummary("Pune"), got.Summary)
}

func TestTransitStage_NoOriginSkipsBackend(t *testing.T) {
	gen := &fakeGenerator{}
	stage := NewTransitStage(gen, "INR", nil)

	for _, origin := range []string{"", "   "} {
		got := stage.Run(context.Background(), Input{Origin: origin, Destination: "Goa", Days: 3, Budget: 9000})
		assert.Equal(t, NoOriginPlaceholder, got.Text)
		assert.Empty(t, got.Warning)
	}
	assert.Zero(t, gen.calls())
}

func TestTransitStage_PromptCarriesInputs(t *testing.T) {
	gen := &fakeGenerator{}
	stage := NewTransitStage(gen, "INR", nil)

	got := stage.Run(context.Background(), Input{Origin: "Delhi", Destination: "Jaipur", Days: 4, Budget: 18500})

	require.Equal(t, 1, gen.calls())
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Delhi")
	assert.Contains(t, prompt, "Jaipur")
	assert.Contains(t, prompt, strconv.Itoa(4))
	assert.Contains(t, prompt, strconv.Itoa(18500))
	assert.Contains(t, prompt, "DO NOT invent flight numbers")
	assert.Equal(t, TransitTemperature, gen.temps[0])
	assert.Equal(t, "Take the overnight train.", got.Text)
}

func TestTransitStage_BackendFailure(t *testing.T) {
	stage := NewTransitStage(&fakeGenerator{err: errUpstream}, "INR", nil)

	got := stage.Run(context.Background(), Input{Origin: "Delhi", Destination: "Agra", Days: 1, Budget: 100})
	assert.Equal(t, TransitUnavailable, got.Text)
	assert.Contains(t, got.Warning, "upstream down")
}

func TestItineraryPrompt(t *testing.T) {
	attractions, restaurants := jaipurPlaces()
	prompt := ItineraryPrompt(
		Input{Destination: "Jaipur", Days: 2, Budget: 10000},
		ResearchData{
			Summary:     "The Pink City.",
			Attractions: attractions,
			Restaurants: restaurants,
			Weather:     jaipurForecast()[:2],
		},
		"INR",
	)

	assert.Contains(t, prompt, "2-day itinerary for: Jaipur")
	assert.Contains(t, prompt, "Preferences: general sightseeing")
	assert.Contains(t, prompt, "Total budget: 10000 INR")
	assert.Contains(t, prompt, "The Pink City.")
	assert.Contains(t, prompt, "Amber Fort")
	assert.Contains(t, prompt, "Laxmi Misthan Bhandar")
	assert.Contains(t, prompt, "2026-10-17")
	assert.Contains(t, prompt, "Day 1, Day 2")
	assert.Contains(t, prompt, "Morning, Afternoon, Evening")
	assert.Contains(t, prompt, "no JSON")
}

func TestItineraryPrompt_EmptyResearch(t *testing.T) {
	prompt := ItineraryPrompt(Input{Destination: "Leh", Days: 1, Preferences: "mountains"}, ResearchData{}, "INR")

	assert.Contains(t, prompt, "Preferences: mountains")
	assert.Contains(t, prompt, "No forecast available")
	assert.Contains(t, prompt, "No data available")
}

func TestItineraryStage_BackendFailure(t *testing.T) {
	stage := NewItineraryStage(&fakeGenerator{err: errUpstream}, "INR", nil)

	got := stage.Run(context.Background(), NewPlanState(Input{Destination: "Leh", Days: 1}))
	assert.Equal(t, ItineraryUnavailable, got.Text)
	assert.NotEmpty(t, got.Warning)
}

func TestFinalize_EmptyState(t *testing.T) {
	plan := Finalize(NewPlanState(Input{Destination: "Kochi", Days: 1}))

	assert.Equal(t, "Kochi", plan.City)
	assert.NotNil(t, plan.TopAttractions)
	assert.NotNil(t, plan.Restaurants)
	assert.NotNil(t, plan.Weather)
	assert.NotNil(t, plan.Warnings)
	assert.Empty(t, plan.TravelPlan)
	assert.Equal(t, response_models.BudgetCategories{}, plan.BudgetCategories)
}

func TestFinalize_Idempotent(t *testing.T) {
	attractions, restaurants := jaipurPlaces()
	s := NewPlanState(Input{Destination: "Jaipur", Days: 2, Budget: 10000})
	s.Research = ResearchData{Summary: "x", Attractions: attractions, Restaurants: restaurants}
	s.Budget = ComputeBudget(10000, "INR")

	first := Finalize(s)
	second := Finalize(s)
	assert.Equal(t, first, second)

	first.TopAttractions[0].Name = "changed"
	assert.Equal(t, "Amber Fort", s.Research.Attractions[0].Name)
}

func TestPlanState_Clone(t *testing.T) {
	attractions, _ := jaipurPlaces()
	s := NewPlanState(Input{Destination: "Jaipur"})
	s.Research.Attractions = attractions
	s.Warnings = []string{"a"}

	c := s.Clone()
	c.Research.Attractions[0].Name = "other"
	c.Warnings[0] = "b"

	assert.Equal(t, "Amber Fort", s.Research.Attractions[0].Name)
	assert.Equal(t, "a", s.Warnings[0])
}
