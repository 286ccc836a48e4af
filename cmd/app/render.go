package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"travelplanner/internal/models/response_models"
)

// renderPlan renders the plan as terminal markdown. The raw markdown is
// returned when no renderer can be built.
func renderPlan(plan response_models.TripPlan) (string, error) {
	md := planMarkdown(plan)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md, nil
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render plan: %w", err)
	}
	return out, nil
}

func planMarkdown(p response_models.TripPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s: %d-day trip\n\n", p.City, p.Days)
	if p.FromCity != "" {
		fmt.Fprintf(&b, "From **%s** · ", p.FromCity)
	}
	fmt.Fprintf(&b, "Budget **%d** · Preferences: %s\n\n", p.Budget, p.Preferences)

	b.WriteString("## About\n\n")
	b.WriteString(p.WikiSummary)
	b.WriteString("\n\n")

	b.WriteString("## Weather\n\n")
	if len(p.Weather) == 0 {
		b.WriteString("_No forecast available._\n\n")
	} else {
		b.WriteString("| Date | Max °C | Min °C | Rain mm | Code |\n|---|---|---|---|---|\n")
		for _, d := range p.Weather {
			fmt.Fprintf(&b, "| %s | %.1f | %.1f | %.1f | %d |\n", d.Date, d.TempMax, d.TempMin, d.RainMM, d.WeatherCode)
		}
		b.WriteString("\n")
	}

	writePlaces(&b, "Top attractions", p.TopAttractions)
	writePlaces(&b, "Restaurants", p.Restaurants)

	b.WriteString("## Getting there\n\n")
	b.WriteString(p.TravelPlan)
	b.WriteString("\n\n")

	b.WriteString("## Itinerary\n\n")
	b.WriteString(p.Itinerary)
	b.WriteString("\n\n")

	b.WriteString("## Budget\n\n")
	b.WriteString(p.BudgetBreakdown)
	b.WriteString("\n")

	if len(p.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range p.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}

func writePlaces(b *strings.Builder, title string, places []response_models.Place) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(places) == 0 {
		b.WriteString("_No data available._\n\n")
		return
	}
	for _, p := range places {
		fmt.Fprintf(b, "- %s\n", p.Name)
	}
	b.WriteString("\n")
}
