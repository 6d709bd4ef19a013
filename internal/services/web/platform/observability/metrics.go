package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/louisbranch/storyfront/internal/services/web/platform/httpx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unmatchedRoute = "unmatched"

// Metrics provides observability for the web service.
type Metrics struct {
	registry *prometheus.Registry

	// Requests by method, route pattern and status
	Requests *prometheus.CounterVec

	// Request latency by method and route pattern
	Duration *prometheus.HistogramVec

	// Consent decisions by choice
	ConsentDecisions *prometheus.CounterVec

	// Page views by whether they were captured
	PageViews *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance registered on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storyfront_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storyfront_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),

		ConsentDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storyfront_consent_decisions_total",
			Help: "Total consent decisions by choice",
		}, []string{"choice"}),

		PageViews: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storyfront_page_views_total",
			Help: "Total rendered page views by capture state",
		}, []string{"captured"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by route pattern.
// Module routers reuse the route context installed here, so the matched
// pattern is readable once the request completes.
func (m *Metrics) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rctx := chi.RouteContext(r.Context())
			if rctx == nil {
				rctx = chi.NewRouteContext()
				r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
			}
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			route := rctx.RoutePattern()
			if route == "" {
				route = r.Pattern
			}
			if route == "" {
				route = unmatchedRoute
			}
			m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(rec.Status())).Inc()
			m.Duration.WithLabelValues(r.Method, route).Observe(time.Since(started).Seconds())
		})
	}
}

// IncrementConsentDecision records a consent decision.
func (m *Metrics) IncrementConsentDecision(choice string) {
	if m != nil {
		m.ConsentDecisions.WithLabelValues(choice).Inc()
	}
}

// IncrementPageView records a rendered page view.
func (m *Metrics) IncrementPageView(captured bool) {
	if m != nil {
		m.PageViews.WithLabelValues(strconv.FormatBool(captured)).Inc()
	}
}
