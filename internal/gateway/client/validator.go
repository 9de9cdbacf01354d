package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ValidationResult is the verdict for one bearer token. A verdict with
// Valid=false is an answer, not a failure. CircuitBreakerActivated is set
// only by the fallback path when the identity service is unreachable.
// The field tags mirror the auth-service /validate response exactly; userId
// rides as a JSON string there, so it must decode as one here.
type ValidationResult struct {
	Valid                   bool     `json:"valid"`
	UserID                  int64    `json:"userId,string,omitempty"`
	Username                string   `json:"username,omitempty"`
	Email                   string   `json:"email,omitempty"`
	Roles                   []string `json:"roles,omitempty"`
	Message                 string   `json:"message,omitempty"`
	CircuitBreakerActivated bool     `json:"circuitBreakerActivated,omitempty"`
}

// Validator answers whether a token is currently acceptable. An error means
// the question could not be answered, never that the token is bad.
type Validator interface {
	Validate(ctx context.Context, token string) (*ValidationResult, error)
}

type httpValidator struct {
	baseURL string
	client  *http.Client
}

func NewHTTPValidator(authServiceURL string, timeout time.Duration) Validator {
	return &httpValidator{
		baseURL: authServiceURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (v *httpValidator) Validate(ctx context.Context, token string) (*ValidationResult, error) {
	payload, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		v.baseURL+"/api/v1/auth/validate", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("validation endpoint returned %d", resp.StatusCode)
	}

	var result ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding validation response: %w", err)
	}
	return &result, nil
}
