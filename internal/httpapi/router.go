package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Deps are the use cases the API serves.
type Deps struct {
	Programs ProgramFinder
	Schedule ScheduleReader
}

type RouterConfig struct {
	AllowedOrigins []string
	// RequestTimeout bounds each handler's use-case call.
	RequestTimeout time.Duration
}

func NewRouter(log *slog.Logger, deps Deps, cfg RouterConfig) *chi.Mux {
	router := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(log))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", Healthz())

	router.Route("/api", func(r chi.Router) {
		r.Get("/programs", ListPrograms(log, deps.Programs, timeout))
		r.Get("/programs/{id}/schedule", GetSchedule(log, deps.Programs, deps.Schedule, timeout))
		r.Get("/programs/{id}/early-orders", GetEarlyOrders(log, deps.Programs, deps.Schedule, timeout))
		r.Get("/programs/{id}/timeline", GetTimeline(log, deps.Programs, deps.Schedule, timeout))
		r.Get("/parts/{id}/schedule", GetPartSchedule(log, deps.Schedule, timeout))
	})

	return router
}

// requestLogger writes one slog record per request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request completed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.Duration("duration", time.Since(start)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
