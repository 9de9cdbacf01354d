package usecase

import (
	"context"
	"log"
)

// ValidationResult is the full outcome of a token check. Failures carry a
// Message instead of an error: this boundary absorbs everything.
type ValidationResult struct {
	Valid    bool
	UserID   int64
	Username string
	Email    string
	Roles    []string
	Message  string
}

// ValidateToken verifies the token and enriches the claims from the store.
// It never returns an error; any failure, including a store outage, becomes
// a Valid=false result.
func (uc *UserUsecase) ValidateToken(ctx context.Context, token string) *ValidationResult {
	claims, err := uc.codec.Verify(token)
	if err != nil {
		return &ValidationResult{Valid: false, Message: "Invalid or expired token"}
	}

	user, err := uc.userRepo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		log.Printf("Token validation failed for %s: %v", claims.Subject, err)
		return &ValidationResult{Valid: false, Message: "Token validation failed"}
	}

	if err := user.CanLogin(); err != nil {
		return &ValidationResult{Valid: false, Message: err.Error()}
	}

	return &ValidationResult{
		Valid:    true,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	}
}
