package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/ball-contest-support/internal/logging"
	"github.com/DoyleJ11/ball-contest-support/internal/ws"
)

func SetupRoutes(d Deps) http.Handler {
	d.Logger = logging.OrNop(d.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(d.Logger))

	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(d.Hub, d.Logger))

	r.Route("/matches", func(r chi.Router) {
		r.Post("/", CreateMatch(d))
		r.Get("/", ListMatches(d))
		r.Get("/{code}", GetMatch(d))
		r.Delete("/{code}", DeleteMatch(d))
		r.Post("/{code}/observations", PostObservation(d))
		r.Put("/{code}/enabled", SetEnabled(d))
	})

	r.Route("/profiles", func(r chi.Router) {
		r.Post("/", SaveProfile(d))
		r.Get("/", ListProfiles(d))
		r.Get("/{name}", GetProfile(d))
	})
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
