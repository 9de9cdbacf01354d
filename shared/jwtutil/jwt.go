package jwtutil

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried inside an access token. The token is self-contained: nothing
// here is looked up server-side during verification.
type Claims struct {
	UserID int64    `json:"uid,string"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// Codec signs and verifies access tokens with a process-wide HS256 secret.
// The secret is loaded once at startup and never rotated mid-process.
type Codec struct {
	secret []byte
	issuer string
	skew   time.Duration
	now    func() time.Time
}

func NewCodec(secret []byte, issuer string, skew time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtutil: signing secret is required")
	}
	return &Codec{
		secret: secret,
		issuer: issuer,
		skew:   skew,
		now:    time.Now,
	}, nil
}

// WithClock overrides the clock source. Only intended for test use.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Issue signs a token for the subject. Expiry is absolute: now + ttl.
func (c *Codec) Issue(subject string, userID int64, roles []string, ttl time.Duration) (string, time.Time, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", time.Time{}, errors.New("jwtutil: subject is required")
	}

	now := c.now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature integrity and expiry. Every failure collapses to
// ErrInvalidToken; callers only need valid/invalid.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	claims := new(Claims)
	parser := jwt.NewParser(
		jwt.WithIssuer(c.issuer),
		jwt.WithLeeway(c.skew),
		jwt.WithTimeFunc(func() time.Time { return c.now().UTC() }),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
