package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"travelplanner/pkg/utils"
)

func TestGeocodeService_Locate(t *testing.T) {
	var gotQuery string
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"lat":"26.9154576","lon":"75.8189817","display_name":"Jaipur, Rajasthan, India"}]`))
	})
	geo := newTestGeocoder(t, srv.URL)

	c, err := geo.Locate(context.Background(), "  Jaipur ")
	require.NoError(t, err)
	assert.Equal(t, "Jaipur", gotQuery)
	assert.InDelta(t, 26.9154576, c.Lat, 1e-9)
	assert.InDelta(t, 75.8189817, c.Lon, 1e-9)
	assert.Equal(t, "Jaipur, Rajasthan, India", c.DisplayName)

	_, err = geo.Locate(context.Background(), "JAIPUR")
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load())
}

func TestGeocodeService_UnknownCity(t *testing.T) {
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	geo := newTestGeocoder(t, srv.URL)

	_, err := geo.Locate(context.Background(), "Qwertyuiop")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = geo.Locate(context.Background(), "qwertyuiop")
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.EqualValues(t, 1, hits.Load())
}

func TestGeocodeService_RetriesRateLimit(t *testing.T) {
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	geo := newTestGeocoder(t, srv.URL)

	_, err := geo.Locate(context.Background(), "Goa")
	assert.ErrorIs(t, err, utils.ErrUpstreamUnavailable)
	assert.EqualValues(t, 3, hits.Load())
}
