package planner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"travelplanner/internal/models/response_models"
	"travelplanner/pkg/utils"
)

const (
	DefaultPreferences   = "general sightseeing"
	ItineraryUnavailable = "Itinerary generation is unavailable right now. Please try again later."

	ItineraryTemperature float32 = 0.7
)

type ItineraryStage struct {
	gen      utils.TextGenerator
	currency string
	logger   *zap.Logger
}

func NewItineraryStage(gen utils.TextGenerator, currency string, logger *zap.Logger) *ItineraryStage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItineraryStage{gen: gen, currency: currency, logger: logger}
}

func (s *ItineraryStage) Run(ctx context.Context, state PlanState) GeneratedText {
	prompt := ItineraryPrompt(state.Input, state.Research, s.currency)

	text, err := s.gen.Generate(ctx, prompt, ItineraryTemperature)
	if err != nil {
		s.logger.Error("itinerary generation failed", zap.String("backend", s.gen.Name()), zap.Error(err))
		return GeneratedText{Text: ItineraryUnavailable, Warning: fmt.Sprintf("itinerary: %v", err)}
	}
	return GeneratedText{Text: text}
}

func ItineraryPrompt(in Input, research ResearchData, currency string) string {
	prefs := strings.TrimSpace(in.Preferences)
	if prefs == "" {
		prefs = DefaultPreferences
	}

	var prompt strings.Builder

	prompt.WriteString("You are a travel planner AI.\n\n")
	prompt.WriteString(fmt.Sprintf("Create a realistic %d-day itinerary for: %s\n\n", in.Days, strings.TrimSpace(in.Destination)))
	prompt.WriteString(fmt.Sprintf("Preferences: %s\n", prefs))
	prompt.WriteString(fmt.Sprintf("Total budget: %d %s\n\n", in.Budget, currency))

	prompt.WriteString("City summary:\n")
	prompt.WriteString(research.Summary)
	prompt.WriteString("\n\n")

	prompt.WriteString("Weather forecast:\n")
	prompt.WriteString(formatForecast(research.Weather))
	prompt.WriteString("\n")

	prompt.WriteString("Top attractions (from maps data):\n")
	prompt.WriteString(formatPlaces(research.Attractions))
	prompt.WriteString("\n")

	prompt.WriteString("Top restaurants (from maps data):\n")
	prompt.WriteString(formatPlaces(research.Restaurants))
	prompt.WriteString("\n")

	prompt.WriteString("Rules:\n")
	labels := make([]string, 0, 3)
	for d := 1; d <= in.Days && d <= 3; d++ {
		labels = append(labels, fmt.Sprintf("Day %d", d))
	}
	prompt.WriteString(fmt.Sprintf("- Day-wise plan: %s, ... (exactly %d days)\n", strings.Join(labels, ", "), in.Days))
	prompt.WriteString("- Each day must include: Morning, Afternoon, Evening\n")
	prompt.WriteString("- Include at least 1 food suggestion daily\n")
	prompt.WriteString("- Keep it realistic, not overcrowded\n")
	prompt.WriteString("- Add short travel tips\n")
	prompt.WriteString("- Output must be clean and readable prose (no JSON)\n")

	return prompt.String()
}

func formatForecast(days []response_models.ForecastDay) string {
	if len(days) == 0 {
		return "- No forecast available\n"
	}
	var b strings.Builder
	for _, d := range days {
		fmt.Fprintf(&b, "- %s: max %.1f°C, min %.1f°C, rain %.1f mm, weather code %d\n",
			d.Date, d.TempMax, d.TempMin, d.RainMM, d.WeatherCode)
	}
	return b.String()
}

func formatPlaces(places []response_models.Place) string {
	if len(places) == 0 {
		return "- No data available\n"
	}
	var b strings.Builder
	for _, p := range places {
		fmt.Fprintf(&b, "- %s (%.5f, %.5f)\n", p.Name, p.Latitude, p.Longitude)
	}
	return b.String()
}
