package location

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const lusaka = `{
	"place_id": 1,
	"lat": "-15.4167",
	"lon": "28.2833",
	"display_name": "Cairo Road, Lusaka, Lusaka Province, 10101, Zambia",
	"address": {
		"road": "Cairo Road",
		"town": "Lusaka",
		"state": "Lusaka Province",
		"postcode": "10101",
		"country": "Zambia",
		"country_code": "zm"
	}
}`

type memCache struct{ items map[string][]byte }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := m.items[key]
	return b, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.items[key] = value
	return nil
}

func fakeNominatim(t *testing.T, status int, body string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "vendora-test", r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRouter(srv *httptest.Server, c *memCache, limiter *ratelimit.Limiter) *chi.Mux {
	g := NewNominatim(NominatimConfig{BaseURL: srv.URL, UserAgent: "vendora-test", Timeout: time.Second})
	r := chi.NewRouter()
	NewHandler(NewService(g, c, time.Hour, zap.NewNop()), limiter).RegisterRoutes(r)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLookupReshapesAndCaches(t *testing.T) {
	var calls int32
	c := &memCache{items: map[string][]byte{}}
	r := newRouter(fakeNominatim(t, http.StatusOK, lusaka, &calls), c, nil)

	rec := get(r, "/api/location?lat=-15.41671&lon=28.28331")
	require.Equal(t, http.StatusOK, rec.Code)

	var loc Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loc))
	assert.Equal(t, "Cairo Road", loc.Road)
	assert.Equal(t, "Lusaka", loc.City)
	assert.Equal(t, "zm", loc.CountryCode)
	assert.Equal(t, "10101", loc.Postcode)
	assert.Equal(t, -15.4167, loc.Lat)

	assert.Contains(t, c.items, "geo:-15.4167,28.2833")

	rec = get(r, "/api/location?lat=-15.41669&lon=28.28329")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLookupBadInput(t *testing.T) {
	var calls int32
	r := newRouter(fakeNominatim(t, http.StatusOK, lusaka, &calls), &memCache{items: map[string][]byte{}}, nil)

	for _, path := range []string{
		"/api/location",
		"/api/location?lat=1",
		"/api/location?lat=abc&lon=2",
		"/api/location?lat=91&lon=0",
		"/api/location?lat=0&lon=-181",
		"/api/location?lat=NaN&lon=0",
	} {
		assert.Equal(t, http.StatusBadRequest, get(r, path).Code, path)
	}
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestLookupUpstreamFailure(t *testing.T) {
	var calls int32
	r := newRouter(fakeNominatim(t, http.StatusBadGateway, "oops", &calls), &memCache{items: map[string][]byte{}}, nil)

	rec := get(r, "/api/location?lat=1&lon=1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestParseReverseErrorMember(t *testing.T) {
	_, err := parseReverse([]byte(`{"error":"Unable to geocode"}`), 0, 0)
	assert.ErrorIs(t, err, apperr.ErrUpstream)

	_, err = parseReverse([]byte(`not json`), 0, 0)
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestLookupIsRateLimited(t *testing.T) {
	var calls int32
	r := newRouter(fakeNominatim(t, http.StatusOK, lusaka, &calls), &memCache{items: map[string][]byte{}}, ratelimit.New(0.001, 1))

	assert.Equal(t, http.StatusOK, get(r, "/api/location?lat=1&lon=1").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/api/location?lat=1&lon=1").Code)
}
