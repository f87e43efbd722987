package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors; the default registry is left alone.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vendora",
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "Current number of in-flight HTTP requests.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vendora",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests handled.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vendora",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"method", "route"})

	stockMovements = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vendora",
		Subsystem: "inventory",
		Name:      "stock_movements_total",
		Help:      "Stock movements recorded, by type and outcome.",
	}, []string{"type", "outcome"})

	rewardsDistributed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vendora",
		Subsystem: "reward",
		Name:      "distributions_total",
		Help:      "Reward distributions created, by milestone kind.",
	}, []string{"kind"})

	geocodeRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vendora",
		Subsystem: "location",
		Name:      "geocode_requests_total",
		Help:      "Reverse geocode lookups, by result (hit, miss, error).",
	}, []string{"result"})

	jobRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vendora",
		Subsystem: "scheduler",
		Name:      "job_runs_total",
		Help:      "Scheduled job runs, by job and success.",
	}, []string{"job", "success"})
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		stockMovements,
		rewardsDistributed,
		geocodeRequests,
		jobRuns,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler records request counts and latency labelled by chi route pattern.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// StockMovement counts a ledger write attempt.
func StockMovement(movementType string, ok bool) {
	outcome := "applied"
	if !ok {
		outcome = "rejected"
	}
	stockMovements.WithLabelValues(movementType, outcome).Inc()
}

// RewardDistributed counts a created reward distribution.
func RewardDistributed(kind string) { rewardsDistributed.WithLabelValues(kind).Inc() }

// GeocodeRequest counts a reverse geocode lookup by result.
func GeocodeRequest(result string) { geocodeRequests.WithLabelValues(result).Inc() }

// JobRun counts a scheduled job execution.
func JobRun(job string, ok bool) { jobRuns.WithLabelValues(job, strconv.FormatBool(ok)).Inc() }
