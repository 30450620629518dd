// Package server exposes the schedule calculations over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/cloud-ru/emi-schedule-go/internal/cache"
	"github.com/cloud-ru/emi-schedule-go/internal/config"
	"github.com/cloud-ru/emi-schedule-go/internal/metrics"
	"github.com/cloud-ru/emi-schedule-go/internal/tools"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/secure"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const maxBodyBytes = 1 << 20

type handler struct {
	logger    *zap.Logger
	results   cache.Cache
	validator *validator.Validate
	schedule  tools.ScheduleFunc
	compare   tools.CompareFunc
	emi       tools.EMIFunc
	inflight  singleflight.Group
}

// New builds the HTTP router. results caches schedules by request id.
func New(cfg *config.Config, logger *zap.Logger, tracer trace.Tracer, results cache.Cache) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handler{
		logger:    logger,
		results:   results,
		validator: validator.New(),
		schedule:  tools.ScheduleHandler(cfg, tracer, logger),
		compare:   tools.CompareHandler(cfg, tracer, logger),
		emi:       tools.EMIHandler(cfg, tracer),
	}

	timeout := cfg.AppRequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rateLimit := cfg.RateLimitPerMinute
	if rateLimit <= 0 {
		rateLimit = 60
	}

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'",
	})

	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Timeout(timeout),
		secureMiddleware.Handler,
		metrics.Middleware,
		requestLogger(logger),
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.Limit(rateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Post("/schedule", h.calculateSchedule)
		r.Post("/schedule/compare", h.compareStrategy)
		r.Post("/emi", h.calculateEMI)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("request served",
				zap.String("op", "server.request"),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
