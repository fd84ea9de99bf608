// Package http assembles the gateway router: middleware chain, operational
// endpoints, and the authenticated ingestion API.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	lawhandler "lexgate/internal/law/handler"
	"lexgate/internal/platform/metrics"
	"lexgate/internal/platform/middleware"
	"lexgate/pkg/httputil"
)

// Deps carries everything the router needs. Handlers register themselves;
// the router only owns ordering and middleware.
type Deps struct {
	LawHandler     *lawhandler.Handler
	AuthValidator  middleware.OperatorValidator
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	RequestTimeout time.Duration
	// Ready reports dependency health for /healthz.
	Ready func() error
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))
	r.Use(middleware.ClientMetadata)

	r.Get("/healthz", handleHealth(deps.Ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(timeout))
		r.Use(middleware.RequireAuth(deps.AuthValidator, deps.Logger))
		deps.LawHandler.Register(r)
	})

	return r
}

func handleHealth(ready func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			if err := ready(); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"reason": err.Error(),
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
