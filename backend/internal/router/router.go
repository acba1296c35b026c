package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/itchan-dev/kvboard/backend/internal/handler"
	"github.com/itchan-dev/kvboard/backend/internal/setup"
	mw "github.com/itchan-dev/kvboard/shared/middleware"
	"github.com/itchan-dev/kvboard/shared/middleware/metrics"
)

// New creates the chi router with every route of the api.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()
	origin := deps.Config.Public.Cors.Origin

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	// CORS headers go on every response, errors included; preflights are answered here
	r.Use(mw.AllowCrossOrigin(origin, handler.AllowedMethods))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: handler.AllowedMethods,
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Use(mw.SecurityHeaders(false))

	h := deps.Handler
	apiNotAllowed := handler.MethodNotAllowed(handler.AllowedMethods)
	opsNotAllowed := handler.MethodNotAllowed(handler.OperationalMethods)

	// the root also sees methods chi doesn't know, before any subrouter is matched
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/api/") {
			apiNotAllowed(w, req)
			return
		}
		opsNotAllowed(w, req)
	})

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// only POST creates records, so only POST is limited
	var limitCreate []func(http.Handler) http.Handler
	if deps.CreateLimiter != nil {
		limitCreate = append(limitCreate, mw.RateLimit(deps.CreateLimiter, mw.GetIP))
	}

	r.Route("/api", func(api chi.Router) {
		api.MethodNotAllowed(apiNotAllowed)

		api.Options("/threads", h.Options)
		api.Get("/threads", h.GetThreads)
		api.With(limitCreate...).Post("/threads", h.CreateThread)
		api.Delete("/threads", h.DeleteThread)

		api.Options("/replies", h.Options)
		api.Get("/replies", h.GetReplies)
		api.With(limitCreate...).Post("/replies", h.CreateReply)
		api.Delete("/replies", h.DeleteReply)
	})

	return r
}
