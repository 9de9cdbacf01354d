package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"identity-platform/internal/usersvc/handler"
)

func SetupRoutes(r chi.Router, h *handler.UserHandler) chi.Router {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)

	r.Route("/api/v1/users", func(api chi.Router) {
		api.Get("/", h.ListProfiles)
		api.Get("/{userId}", h.GetProfile)
		api.Get("/username/{username}", h.GetProfileByUsername)
		api.Put("/{userId}", h.UpdateProfile)
		api.Post("/{userId}/last-login", h.RecordLastLogin)
		api.Delete("/{userId}", h.DeleteProfile)
	})

	return r
}
