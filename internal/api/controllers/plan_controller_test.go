package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/planner"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"
)

type fakePlanner struct {
	calls int
	got   planner.Input
	err   error
}

func (f *fakePlanner) Run(_ context.Context, in planner.Input) (response_models.TripPlan, error) {
	f.calls++
	f.got = in
	if f.err != nil {
		return response_models.TripPlan{}, f.err
	}
	return response_models.TripPlan{
		City:             in.Destination,
		Days:             in.Days,
		Budget:           in.Budget,
		TravelPlan:       planner.NoOriginPlaceholder,
		TopAttractions:   []response_models.Place{},
		Restaurants:      []response_models.Place{},
		Weather:          []response_models.ForecastDay{},
		BudgetCategories: planner.ComputeBudget(in.Budget, "INR").Categories,
		Warnings:         []string{},
	}, nil
}

func newTestRouter(p *fakePlanner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	pc := NewPlanController(services.NewTripPlanService(p, nil), "Ollama")
	r := gin.New()
	r.GET("/", pc.StatusHandler)
	r.GET("/healthz", pc.HealthHandler)
	r.POST("/plan", pc.PlanTripHandler)
	return r
}

func postPlan(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type planEnvelope struct {
	Status  string                   `json:"status"`
	Code    int                      `json:"code"`
	Message string                   `json:"message"`
	Data    response_models.TripPlan `json:"data"`
}

func TestStatusHandler(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(&fakePlanner{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Travel Planner AI Backend Running (Ollama Mode)"}`, w.Body.String())
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(&fakePlanner{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var env utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "success", env.Status)
}

func TestPlanTripHandler_Success(t *testing.T) {
	p := &fakePlanner{}
	w := postPlan(newTestRouter(p), `{"city":"Jaipur","days":2,"budget":10000}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var env planEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "Jaipur", env.Data.City)
	assert.Equal(t, planner.NoOriginPlaceholder, env.Data.TravelPlan)
	assert.Equal(t, 4000, env.Data.BudgetCategories.Stay)
	assert.Equal(t, 700, env.Data.BudgetCategories.Misc)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, "general sightseeing", p.got.Preferences)
}

func TestPlanTripHandler_Defaults(t *testing.T) {
	p := &fakePlanner{}
	w := postPlan(newTestRouter(p), `{"city":"Goa"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, p.got.Days)
	assert.Equal(t, 5000, p.got.Budget)
}

func TestPlanTripHandler_MissingDestination(t *testing.T) {
	for _, body := range []string{`{}`, `{"city":"   "}`, `{"from_city":"Delhi"}`, ``} {
		p := &fakePlanner{}
		w := postPlan(newTestRouter(p), body)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		var env utils.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "Destination city is required", env.Message)
		assert.Zero(t, p.calls, "no stage may run for body %q", body)
	}
}

func TestPlanTripHandler_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"city":`},
		{"days not a number", `{"city":"Goa","days":"two"}`},
		{"zero days", `{"city":"Goa","days":0}`},
		{"negative budget", `{"city":"Goa","budget":-5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePlanner{}
			w := postPlan(newTestRouter(p), tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, p.calls)
		})
	}
}

func TestPlanTripHandler_PipelineError(t *testing.T) {
	w := postPlan(newTestRouter(&fakePlanner{err: context.Canceled}), `{"city":"Goa"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
