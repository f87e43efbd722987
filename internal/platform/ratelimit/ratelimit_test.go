package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
}

func request(addr string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/location", nil)
	r.RemoteAddr = addr
	return r
}

func TestHandler_BurstThenThrottle(t *testing.T) {
	h := New(0.001, 2).Handler(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, request("10.0.0.1:5000"))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// another port on the same host shares the budget, another host does not
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request("10.0.0.1:6000"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request("10.0.0.2:5000"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPrune(t *testing.T) {
	l := New(1, 1)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	l.get("a")

	now = now.Add(5 * time.Minute)
	l.get("b")

	assert.Equal(t, 1, l.Prune(time.Minute))
	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "b")
}
