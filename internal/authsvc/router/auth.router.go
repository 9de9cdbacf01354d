package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"identity-platform/internal/authsvc/handler"
)

func SetupRoutes(r chi.Router, h *handler.AuthHandler) chi.Router {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(api chi.Router) {
		api.Get("/health", h.Health)

		api.Post("/register", h.Register)
		api.Post("/login", h.Login)
		api.Post("/validate", h.ValidateToken)

		api.Put("/users/{userId}", h.UpdateIdentity)
		api.Delete("/users/{userId}", h.Deactivate)
	})

	return r
}
