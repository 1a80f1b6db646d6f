// Package api exposes the directory server's JSON REST surface.
package api

import (
	"net/http"

	"github.com/geosick-health/geosick/internal/logging"
	"github.com/geosick-health/geosick/internal/server/accounts"
	"github.com/geosick-health/geosick/internal/server/activity"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	accounts  *accounts.Service
	activity  *activity.Service
	logger    logging.Logger
	jwtSecret []byte
}

func NewHandler(as *accounts.Service, acts *activity.Service, secretKey string, logger logging.Logger) *Handler {
	return &Handler{
		accounts:  as,
		activity:  acts,
		logger:    logger.With("module", "api"),
		jwtSecret: []byte(secretKey),
	}
}

// Routes builds the router. The activity endpoints sit behind bearer-token
// auth; the listing additionally requires the admin role.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/accounts", h.registerAccount)
		r.Post("/sessions", h.createSession)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)
			r.Post("/activity", h.appendActivity)
			r.Get("/activity", h.listGlobalActivity)
		})
	})

	return r
}
