// Package api serves dashboard results over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/internal/logging"
	"github.com/streampulse/pulse/internal/metrics"
)

// Handler serves the dashboard routes from a base config and a data source.
type Handler struct {
	baseCfg *contract.Config
	src     contract.Source
}

// NewHandler creates a Handler. Every request works on a clone of baseCfg.
func NewHandler(baseCfg *contract.Config, src contract.Source) *Handler {
	return &Handler{baseCfg: baseCfg, src: src}
}

// Routes builds the chi router with the middleware stack and all routes.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(prometheusMetrics)

	r.Get("/healthz", h.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/trend", h.Trend)
		r.Get("/compare", h.Compare)
		r.Get("/volatility", h.Volatility)
		r.Get("/live", h.Live)
		r.Get("/events", h.Events)
		r.Get("/insights", h.Insights)
		r.Get("/resolve", h.Resolve)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// unmatchedRoute labels requests that no route matched, keeping label cardinality fixed.
const unmatchedRoute = "unmatched"

// prometheusMetrics counts requests by route pattern and status code.
func prometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordHTTP(route, status)
		logging.Debug().
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("route", route).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// NewServer wraps handler in an http.Server bound to addr.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
