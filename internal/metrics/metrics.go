package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "moviewatch",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moviewatch",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "moviewatch",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	watchlistOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moviewatch",
			Subsystem: "watchlist",
			Name:      "operations_total",
			Help:      "Watchlist operations by kind and outcome.",
		},
		[]string{"op", "result"},
	)

	movieCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moviewatch",
			Subsystem: "movies",
			Name:      "list_cache_total",
			Help:      "Movie list cache lookups by outcome.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpInFlight,
		httpRequests,
		httpDuration,
		watchlistOps,
		movieCache,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count, latency and in-flight requests. Paths are
// labelled by route template to keep cardinality bounded. It must wrap the
// request logger so that errors have already been rendered when the status is read.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			httpInFlight.Inc()
			defer httpInFlight.Dec()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)
			httpRequests.WithLabelValues(c.Request().Method, path, status).Inc()
			httpDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// RecordWatchlistOp counts a watchlist operation outcome.
func RecordWatchlistOp(op, result string) {
	watchlistOps.WithLabelValues(op, result).Inc()
}

// RecordMovieCache counts a movie list cache hit or miss.
func RecordMovieCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	movieCache.WithLabelValues(result).Inc()
}
