package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"
	"travelplanner/internal/models/response_models"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/utils"
)

func testOutbound() OutboundConfig {
	return OutboundConfig{
		UserAgent: "travelplanner-test/1.0",
		Timeout:   5 * time.Second,
		Retry:     utils.RetryPolicy{Name: "test", MaxAttempts: 3},
	}
}

// countingServer serves handler and counts the requests it sees.
func countingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestGeocoder(t *testing.T, url string) GeocodeServiceInterface {
	t.Helper()
	return NewGeocodeService(url, mem.NewTTLCache[GeoEntry](time.Minute), time.Minute,
		rate.NewLimiter(rate.Inf, 1), testOutbound(), nil)
}

func newPlaceCache() *mem.TTLCache[[]response_models.Place] {
	return mem.NewTTLCache[[]response_models.Place](time.Minute)
}

func newForecastCache() *mem.TTLCache[[]response_models.ForecastDay] {
	return mem.NewTTLCache[[]response_models.ForecastDay](time.Minute)
}

// stubGeocoder answers Locate without any HTTP.
type stubGeocoder struct {
	coords Coordinates
	err    error
	calls  atomic.Int32
}

func (s *stubGeocoder) Locate(_ context.Context, _ string) (Coordinates, error) {
	s.calls.Add(1)
	return s.coords, s.err
}
