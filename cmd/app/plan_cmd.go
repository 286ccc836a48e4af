package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"travelplanner/internal/models/request_models"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/services"
)

var planFlags struct {
	city   string
	from   string
	days   int
	budget int
	prefs  string
	json   bool
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan one trip and print it",
	Example: `  travelplanner plan --city Jaipur --days 2 --budget 10000
  travelplanner plan --city Goa --from Mumbai --prefs "beaches, seafood" --json`,
	RunE: runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&planFlags.city, "city", "", "destination city (required)")
	f.StringVar(&planFlags.from, "from", "", "starting city, enables transit suggestions")
	f.IntVar(&planFlags.days, "days", services.DefaultTripDays, "trip length in days")
	f.IntVar(&planFlags.budget, "budget", services.DefaultTripBudget, "total budget in whole currency units")
	f.StringVar(&planFlags.prefs, "prefs", services.DefaultPreferences, "travel preferences")
	f.BoolVar(&planFlags.json, "json", false, "print the raw JSON result")
	_ = planCmd.MarkFlagRequired("city")
}

func runPlan(cmd *cobra.Command, _ []string) error {
	var tripService services.TripPlanServiceInterface
	app := fx.New(
		coreModules(),
		fx.NopLogger,
		fx.Populate(&tripService),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer app.Stop(context.Background())

	req := request_models.PlanTripRequest{
		FromCity:    planFlags.from,
		City:        planFlags.city,
		Days:        &planFlags.days,
		Budget:      &planFlags.budget,
		Preferences: &planFlags.prefs,
	}
	plan, err := tripService.PlanTrip(ctx, req)
	if err != nil {
		return err
	}

	return writePlan(cmd.OutOrStdout(), plan, planFlags.json)
}

func writePlan(w io.Writer, plan response_models.TripPlan, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	md, err := renderPlan(plan)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, md)
	return err
}
