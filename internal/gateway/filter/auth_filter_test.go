package filter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"identity-platform/internal/gateway/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingValidator struct {
	calls  int
	result *client.ValidationResult
}

func (v *countingValidator) Validate(context.Context, string) (*client.ValidationResult, error) {
	v.calls++
	return v.result, nil
}

type mapCache struct {
	entries map[string]*client.ValidationResult
	puts    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*client.ValidationResult)}
}

func (c *mapCache) Get(_ context.Context, token string) (*client.ValidationResult, bool) {
	res, ok := c.entries[token]
	return res, ok
}

func (c *mapCache) Put(_ context.Context, token string, res *client.ValidationResult) {
	c.puts++
	if res.Valid {
		c.entries[token] = res
	}
}

// echoHandler records the identity headers it saw.
type echoHandler struct {
	called  bool
	headers http.Header
}

func (h *echoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.headers = r.Header.Clone()
	w.WriteHeader(http.StatusOK)
}

func allowAlice() *client.ValidationResult {
	return &client.ValidationResult{
		Valid:    true,
		UserID:   42,
		Username: "alice",
		Roles:    []string{"USER", "ADMIN"},
	}
}

func serve(f *AuthFilter, next *echoHandler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.Middleware(next).ServeHTTP(rec, req)
	return rec
}

func TestMissingHeaderRejectedWithoutRemoteCall(t *testing.T) {
	v := &countingValidator{result: allowAlice()}
	f := NewAuthFilter(v, nil, nil)
	next := &echoHandler{}

	rec := serve(f, next, httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
	assert.Zero(t, v.calls)
}

func TestMalformedAuthorizationRejected(t *testing.T) {
	v := &countingValidator{result: allowAlice()}
	f := NewAuthFilter(v, nil, nil)

	for _, h := range []string{"Basic abc", "Bearer", "Bearer   ", "token abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil)
		req.Header.Set("Authorization", h)
		rec := serve(f, &echoHandler{}, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", h)
	}
	assert.Zero(t, v.calls)
}

func TestPublicPathSkipsValidation(t *testing.T) {
	v := &countingValidator{result: allowAlice()}
	f := NewAuthFilter(v, nil, []string{"/api/v1/auth/login"})
	next := &echoHandler{}

	rec := serve(f, next, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, next.called)
	assert.Zero(t, v.calls)
}

func TestValidTokenInjectsIdentityHeaders(t *testing.T) {
	v := &countingValidator{result: allowAlice()}
	f := NewAuthFilter(v, nil, nil)
	next := &echoHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/42", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := serve(f, next, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, next.called)
	assert.Equal(t, "42", next.headers.Get(HeaderUserID))
	assert.Equal(t, "alice", next.headers.Get(HeaderUserUsername))
	assert.Equal(t, "USER,ADMIN", next.headers.Get(HeaderUserRoles))
}

func TestClientSuppliedIdentityHeadersStripped(t *testing.T) {
	v := &countingValidator{result: allowAlice()}
	f := NewAuthFilter(v, nil, nil)
	next := &echoHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/42", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	req.Header.Set(HeaderUserID, "666")
	req.Header.Set(HeaderUserRoles, "ADMIN")
	serve(f, next, req)

	// Spoofed values must be replaced with the verdict's identity.
	assert.Equal(t, "42", next.headers.Get(HeaderUserID))
	assert.Equal(t, []string{"USER,ADMIN"}, next.headers.Values(HeaderUserRoles))
}

func TestInvalidTokenRejected(t *testing.T) {
	v := &countingValidator{result: &client.ValidationResult{Valid: false, Message: "Invalid or expired token"}}
	f := NewAuthFilter(v, nil, nil)
	next := &echoHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec := serve(f, next, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
	assert.Equal(t, 1, v.calls)
}

func TestBreakerFallbackStillAnswers401(t *testing.T) {
	v := &countingValidator{result: &client.ValidationResult{Valid: false, CircuitBreakerActivated: true}}
	f := NewAuthFilter(v, nil, nil)
	next := &echoHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := serve(f, next, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

func TestPublicPrefixRule(t *testing.T) {
	v := &countingValidator{result: allowAlice()}
	f := NewAuthFilter(v, nil, []string{"/actuator/*"})
	next := &echoHandler{}

	rec := serve(f, next, httptest.NewRequest(http.MethodGet, "/actuator/info", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, next.called)
	assert.Zero(t, v.calls)
}

func TestCacheHitSkipsRemoteValidation(t *testing.T) {
	v := &countingValidator{result: allowAlice()}
	c := newMapCache()
	f := NewAuthFilter(v, c, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/42", nil)
	req.Header.Set("Authorization", "Bearer hot-token")

	serve(f, &echoHandler{}, req.Clone(context.Background()))
	serve(f, &echoHandler{}, req.Clone(context.Background()))

	assert.Equal(t, 1, v.calls)
	assert.Equal(t, 1, c.puts)
}
