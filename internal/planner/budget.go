package planner

import (
	"fmt"
	"strings"

	"travelplanner/internal/models/response_models"
)

const DefaultCurrency = "INR"

// Shares of the total budget, in percent. Miscellaneous takes the remainder.
const (
	staySharePct      = 40
	foodSharePct      = 25
	transportSharePct = 18
	ticketsSharePct   = 10
)

// ComputeBudget splits total into the five categories. Every percentage
// category is floor(total*pct/100); misc absorbs the rounding loss so the
// categories always sum to total.
func ComputeBudget(total int, currency string) BudgetBreakdown {
	if total < 0 {
		total = 0
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	cats := response_models.BudgetCategories{
		Stay:      share(total, staySharePct),
		Food:      share(total, foodSharePct),
		Transport: share(total, transportSharePct),
		Tickets:   share(total, ticketsSharePct),
	}
	cats.Misc = total - (cats.Stay + cats.Food + cats.Transport + cats.Tickets)

	return BudgetBreakdown{
		Categories: cats,
		Text:       formatBudget(cats, total, currency),
	}
}

// share is floor(total*pct/100) without overflowing on large totals.
func share(total, pct int) int {
	return total/100*pct + (total%100)*pct/100
}

func formatBudget(c response_models.BudgetCategories, total int, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Stay: %d %s\n", c.Stay, currency)
	fmt.Fprintf(&b, "- Food: %d %s\n", c.Food, currency)
	fmt.Fprintf(&b, "- Local transport: %d %s\n", c.Transport, currency)
	fmt.Fprintf(&b, "- Entry tickets: %d %s\n", c.Tickets, currency)
	fmt.Fprintf(&b, "- Miscellaneous: %d %s\n", c.Misc, currency)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total: %d %s", total, currency)
	return b.String()
}
