package client

import (
	"context"
	"log"
	"time"

	"github.com/eapache/go-resiliency/breaker"
	"github.com/eapache/go-resiliency/retrier"
)

// ResilientValidator wraps a Validator with retries and a circuit breaker.
// Definitive answers (including valid=false) pass through untouched; only
// transport failures count against the breaker. Once the breaker opens,
// callers get an immediate deny with CircuitBreakerActivated set instead
// of waiting on a dead service.
type ResilientValidator struct {
	inner Validator
	br    *breaker.Breaker
	re    *retrier.Retrier
}

func NewResilientValidator(inner Validator, failures int, cooldown time.Duration, attempts int, backoff time.Duration) *ResilientValidator {
	return &ResilientValidator{
		inner: inner,
		br:    breaker.New(failures, 1, cooldown),
		re: retrier.New(
			retrier.ConstantBackoff(attempts, backoff),
			retrier.BlacklistClassifier{breaker.ErrBreakerOpen},
		),
	}
}

func (r *ResilientValidator) Validate(ctx context.Context, token string) (*ValidationResult, error) {
	var result *ValidationResult

	err := r.re.RunCtx(ctx, func(ctx context.Context) error {
		return r.br.Run(func() error {
			res, err := r.inner.Validate(ctx, token)
			if err != nil {
				return err
			}
			result = res
			return nil
		})
	})
	if err != nil {
		if err == breaker.ErrBreakerOpen {
			log.Println("Circuit breaker open, denying without remote call")
		} else {
			log.Printf("Token validation unreachable: %v", err)
		}
		return fallbackResult(), nil
	}
	return result, nil
}

// fallbackResult is the deny-by-default answer when the identity service
// cannot be consulted.
func fallbackResult() *ValidationResult {
	return &ValidationResult{
		Valid:                   false,
		Message:                 "Authentication service unavailable",
		CircuitBreakerActivated: true,
	}
}
