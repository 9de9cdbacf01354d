package filter

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"identity-platform/internal/gateway/client"
	"identity-platform/internal/gateway/obs"
	"identity-platform/shared/response"
)

// Identity headers stamped onto authenticated requests before they are
// proxied downstream. Client-supplied copies are always stripped first.
const (
	HeaderUserID       = "X-User-Id"
	HeaderUserUsername = "X-User-Username"
	HeaderUserRoles    = "X-User-Roles"
)

// ResultCache is a read-through cache of positive token verdicts.
type ResultCache interface {
	Get(ctx context.Context, token string) (*client.ValidationResult, bool)
	Put(ctx context.Context, token string, res *client.ValidationResult)
}

type AuthFilter struct {
	validator      client.Validator
	cache          ResultCache // nil disables caching
	publicExact    map[string]struct{}
	publicPrefixes []string
}

// NewAuthFilter builds the edge filter. Public path entries ending in "/*"
// are prefix rules; everything else matches exactly.
func NewAuthFilter(validator client.Validator, cache ResultCache, publicPaths []string) *AuthFilter {
	f := &AuthFilter{
		validator:   validator,
		cache:       cache,
		publicExact: make(map[string]struct{}, len(publicPaths)),
	}
	for _, p := range publicPaths {
		if strings.HasSuffix(p, "/*") {
			f.publicPrefixes = append(f.publicPrefixes, strings.TrimSuffix(p, "*"))
			continue
		}
		f.publicExact[p] = struct{}{}
	}
	return f
}

func (f *AuthFilter) isPublic(path string) bool {
	if _, ok := f.publicExact[path]; ok {
		return true
	}
	for _, prefix := range f.publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (f *AuthFilter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stripIdentityHeaders(r)

		if f.isPublic(r.URL.Path) {
			obs.AuthDecisions.WithLabelValues(obs.DecisionPublic).Inc()
			next.ServeHTTP(w, r)
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			obs.AuthDecisions.WithLabelValues(obs.DecisionDenied).Inc()
			response.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		res := f.resolve(r.Context(), token)
		if !res.Valid {
			// An open breaker still answers 401; the distinction lives in
			// logs and metrics only.
			if res.CircuitBreakerActivated {
				obs.AuthDecisions.WithLabelValues(obs.DecisionBreaker).Inc()
			} else {
				obs.AuthDecisions.WithLabelValues(obs.DecisionDenied).Inc()
			}
			response.Error(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		obs.AuthDecisions.WithLabelValues(obs.DecisionAllowed).Inc()
		r.Header.Set(HeaderUserID, strconv.FormatInt(res.UserID, 10))
		r.Header.Set(HeaderUserUsername, res.Username)
		r.Header.Set(HeaderUserRoles, strings.Join(res.Roles, ","))
		next.ServeHTTP(w, r)
	})
}

// resolve answers from the cache when it can, otherwise asks the
// identity service and caches positive verdicts.
func (f *AuthFilter) resolve(ctx context.Context, token string) *client.ValidationResult {
	if f.cache != nil {
		if res, ok := f.cache.Get(ctx, token); ok {
			obs.CacheHits.Inc()
			return res
		}
	}

	res, err := f.validator.Validate(ctx, token)
	if err != nil {
		log.Printf("Token validation failed: %v", err)
		return &client.ValidationResult{Valid: false, Message: "Token validation failed"}
	}
	if f.cache != nil {
		f.cache.Put(ctx, token, res)
	}
	return res
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return token, token != ""
}

func stripIdentityHeaders(r *http.Request) {
	r.Header.Del(HeaderUserID)
	r.Header.Del(HeaderUserUsername)
	r.Header.Del(HeaderUserRoles)
}
