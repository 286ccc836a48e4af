package planner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"travelplanner/pkg/utils"
)

const (
	NoOriginPlaceholder = "⚠️ No starting city provided. Add `from_city` to get train/flight/bus suggestions."
	TransitUnavailable  = "Transit suggestions are unavailable right now. Please try again later."

	TransitTemperature float32 = 0.5
)

// TransitStage asks the generator how to get from the origin to the
// destination.
type TransitStage struct {
	gen      utils.TextGenerator
	currency string
	logger   *zap.Logger
}

func NewTransitStage(gen utils.TextGenerator, currency string, logger *zap.Logger) *TransitStage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransitStage{gen: gen, currency: currency, logger: logger}
}

func (t *TransitStage) Run(ctx context.Context, in Input) GeneratedText {
	from := strings.TrimSpace(in.Origin)
	if from == "" {
		return GeneratedText{Text: NoOriginPlaceholder}
	}

	prompt := TransitPrompt(from, strings.TrimSpace(in.Destination), in.Days, in.Budget, t.currency)
	text, err := t.gen.Generate(ctx, prompt, TransitTemperature)
	if err != nil {
		t.logger.Error("transit advice generation failed", zap.String("backend", t.gen.Name()), zap.Error(err))
		return GeneratedText{Text: TransitUnavailable, Warning: fmt.Sprintf("transit advice: %v", err)}
	}
	return GeneratedText{Text: text}
}

func TransitPrompt(from, to string, days, budget int, currency string) string {
	var prompt strings.Builder

	prompt.WriteString("You are a travel assistant.\n\n")
	prompt.WriteString(fmt.Sprintf("User wants to travel from: %s\n", from))
	prompt.WriteString(fmt.Sprintf("Destination: %s\n", to))
	prompt.WriteString(fmt.Sprintf("Trip duration: %d days\n", days))
	prompt.WriteString(fmt.Sprintf("Total budget: %d %s\n\n", budget, currency))

	prompt.WriteString("Task:\nSuggest ways to travel between these two cities.\n\n")

	prompt.WriteString("Rules:\n")
	prompt.WriteString("- Give 3 sections: ✈️ Flights, 🚆 Trains, 🚌 Buses / Road\n")
	prompt.WriteString("- For each section give:\n")
	prompt.WriteString("  - Typical travel time range\n")
	prompt.WriteString(fmt.Sprintf("  - Typical cost range (%s)\n", currency))
	prompt.WriteString("  - Booking tips\n")
	prompt.WriteString("- End with one recommendation: the best mode for this budget and trip length.\n")
	prompt.WriteString("- DO NOT invent flight numbers or exact train names.\n")
	prompt.WriteString("- Keep it realistic and short.\n")

	return prompt.String()
}
