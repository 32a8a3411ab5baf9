package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "passpredict"

// Label values used when a request carries no route or no prediction.
const (
	routeUnmatched = "unmatched"
	outcomeNone    = "none"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by route",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "route"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, status and prediction outcome",
		},
		[]string{"method", "route", "status", "outcome"},
	)
)

type outcomeKey struct{}

// SetOutcome tags the in-flight request with a prediction outcome
// (OutcomePass, OutcomeFail, OutcomeMissingField, OutcomeInvalidInput).
// Outside Middleware it does nothing.
func SetOutcome(ctx context.Context, outcome string) {
	if slot, ok := ctx.Value(outcomeKey{}).(*string); ok {
		*slot = outcome
	}
}

// Middleware records latency per chi route and counts requests by status and
// by the prediction outcome the handler reported through SetOutcome.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			outcome := outcomeNone
			ctx := context.WithValue(r.Context(), outcomeKey{}, &outcome)
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			route := routeOf(r)
			httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(r.Method, route, statusOf(ww), outcome).Inc()
		})
	}
}

// routeOf returns the matched chi pattern. Raw paths are never used as labels.
func routeOf(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return routeUnmatched
}

// statusOf treats a handler that never wrote a header as 200, as net/http does.
func statusOf(ww chiMiddleware.WrapResponseWriter) string {
	if ww.Status() == 0 {
		return strconv.Itoa(http.StatusOK)
	}
	return strconv.Itoa(ww.Status())
}
