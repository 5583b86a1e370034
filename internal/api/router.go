package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/churnwatch/internal/hermes"
	"github.com/MikeSquared-Agency/churnwatch/internal/scoring"
)

// NewRouter wires the form pages and the JSON API. h may be nil.
func NewRouter(p *scoring.Predictor, h hermes.Client, adminToken string, rateLimit int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimit))

	a := &assessor{predictor: p, hermes: h, logger: logger}
	form := NewFormHandler(a, logger)
	predict := NewPredictHandler(a)
	explain := NewExplainHandler(p)
	model := NewModelHandler(p)

	r.Get("/", form.Index)
	r.Post("/predict", form.Submit)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/predict", predict.Predict)
		r.Post("/explain", explain.Explain)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/model", model.Info)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
