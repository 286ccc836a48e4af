package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/zoobzio/pipz"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"travelplanner/internal/models/response_models"
	"travelplanner/pkg/utils"
)

// Stage names, in execution order.
const (
	StageResearch  = "research"
	StageTransit   = "travel"
	StageItinerary = "plan"
	StageBudget    = "budget_planner"
	StageFinalize  = "final"

	pipelineName = "trip-plan"
	tracerName   = "travelplanner/planner"
)

var StageOrder = []string{StageResearch, StageTransit, StageItinerary, StageBudget, StageFinalize}

type OrchestratorConfig struct {
	Currency string
}

// Orchestrator runs the five planning stages in fixed order over one
// PlanState per request. Each stage sees the state accumulated so far and
// only its own fields are merged back.
type Orchestrator struct {
	research  *ResearchStage
	transit   *TransitStage
	itinerary *ItineraryStage
	currency  string

	pipeline pipz.Chainable[PlanState]
	tracer   trace.Tracer
	logger   *zap.Logger
}

func NewOrchestrator(
	wiki SummaryProvider,
	places PlaceSearcher,
	weather WeatherProvider,
	gen utils.TextGenerator,
	cfg OrchestratorConfig,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}

	o := &Orchestrator{
		research:  NewResearchStage(wiki, places, weather, logger),
		transit:   NewTransitStage(gen, cfg.Currency, logger),
		itinerary: NewItineraryStage(gen, cfg.Currency, logger),
		currency:  cfg.Currency,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}

	o.pipeline = pipz.NewSequence(pipz.Name(pipelineName), //nolint:unconvert
		o.stage(StageResearch, o.runResearch),
		o.stage(StageTransit, o.runTransit),
		o.stage(StageItinerary, o.runItinerary),
		o.stage(StageBudget, o.runBudget),
		o.stage(StageFinalize, o.runFinalize),
	)
	return o
}

// Run plans one trip. Stage failures are absorbed into placeholder values, so
// an error here means the pipeline itself could not complete.
func (o *Orchestrator) Run(ctx context.Context, in Input) (response_models.TripPlan, error) {
	start := time.Now()

	out, err := o.pipeline.Process(ctx, NewPlanState(in))
	if err != nil {
		o.logger.Error("trip pipeline failed", zap.String("city", in.Destination), zap.Error(err))
		return response_models.TripPlan{}, fmt.Errorf("trip pipeline: %w", err)
	}
	if out.Final == nil {
		return response_models.TripPlan{}, fmt.Errorf("trip pipeline: no final snapshot produced")
	}

	o.logger.Info("trip planned",
		zap.String("city", in.Destination),
		zap.Int("days", in.Days),
		zap.Int("warnings", len(out.Warnings)),
		zap.Duration("took", time.Since(start)))
	return *out.Final, nil
}

// stage wraps fn as a named pipz processor with a span and a log line.
// fn receives a clone so a stage can never alias slices of the running state.
func (o *Orchestrator) stage(name string, fn func(context.Context, PlanState) PlanState) pipz.Chainable[PlanState] {
	return pipz.Apply(pipz.Name(name), func(ctx context.Context, s PlanState) (PlanState, error) { //nolint:unconvert
		if err := ctx.Err(); err != nil {
			return s, err
		}

		ctx, span := o.tracer.Start(ctx, "planner."+name,
			trace.WithAttributes(attribute.String("trip.city", s.Input.Destination)))
		defer span.End()

		start := time.Now()
		next := fn(ctx, s.Clone())

		if added := len(next.Warnings) - len(s.Warnings); added > 0 {
			span.SetStatus(codes.Error, next.Warnings[len(next.Warnings)-1])
		}
		o.logger.Debug("stage finished", zap.String("stage", name), zap.Duration("took", time.Since(start)))
		return next, nil
	})
}

func (o *Orchestrator) runResearch(ctx context.Context, s PlanState) PlanState {
	s.Research = o.research.Run(ctx, s.Input)
	return s
}

func (o *Orchestrator) runTransit(ctx context.Context, s PlanState) PlanState {
	out := o.transit.Run(ctx, s.Input)
	s.TransitPlan = out.Text
	if out.Warning != "" {
		s.Warnings = append(s.Warnings, out.Warning)
	}
	return s
}

func (o *Orchestrator) runItinerary(ctx context.Context, s PlanState) PlanState {
	out := o.itinerary.Run(ctx, s)
	s.Itinerary = out.Text
	if out.Warning != "" {
		s.Warnings = append(s.Warnings, out.Warning)
	}
	return s
}

func (o *Orchestrator) runBudget(_ context.Context, s PlanState) PlanState {
	s.Budget = ComputeBudget(s.Input.Budget, o.currency)
	return s
}

func (o *Orchestrator) runFinalize(_ context.Context, s PlanState) PlanState {
	final := Finalize(s)
	s.Final = &final
	return s
}
