package server

import (
	"log"
	"net/http"

	"identity-platform/internal/gateway/cache"
	"identity-platform/internal/gateway/client"
	"identity-platform/internal/gateway/config"
	"identity-platform/internal/gateway/filter"
	"identity-platform/internal/gateway/proxy"
	"identity-platform/shared/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// requestID tags every request entering the edge so downstream logs can be
// correlated. Client-supplied IDs are kept.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-Id")
		if rid == "" {
			rid = uuid.NewString()
			r.Header.Set("X-Request-Id", rid)
		}
		w.Header().Set("X-Request-Id", rid)
		next.ServeHTTP(w, r)
	})
}

func NewServer(cfg config.AppConfig) *http.Server {
	authProxy, err := proxy.NewServiceProxy("auth", cfg.AuthServiceURL)
	if err != nil {
		log.Fatalf("failed to build auth proxy: %v", err)
	}
	userProxy, err := proxy.NewServiceProxy("user", cfg.UserServiceURL)
	if err != nil {
		log.Fatalf("failed to build user proxy: %v", err)
	}

	validator := client.NewResilientValidator(
		client.NewHTTPValidator(cfg.AuthServiceURL, cfg.ValidateTimeout),
		cfg.BreakerFailures, cfg.BreakerCooldown,
		cfg.RetryAttempts, cfg.RetryBackoff,
	)
	resultCache := cache.NewValidationCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	authFilter := filter.NewAuthFilter(validator, resultCache, cfg.PublicPaths)

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(authFilter.Middleware)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{
			"status":  "UP",
			"service": "api-gateway",
		})
	})

	r.Handle("/api/v1/auth/*", authProxy)
	r.Handle("/api/v1/users/*", userProxy)
	r.Handle("/api/v1/users", userProxy)

	log.Printf("🚀 Gateway listening at %s", cfg.HTTPAddr)
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}
}
