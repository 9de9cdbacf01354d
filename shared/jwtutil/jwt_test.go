package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, skew time.Duration) *Codec {
	t.Helper()
	c, err := NewCodec([]byte("test-secret"), "identity-platform", skew)
	require.NoError(t, err)
	return c
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := newTestCodec(t, 0)

	token, expiresAt, err := codec.Issue("alice", 42, []string{"USER"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, []string{"USER"}, claims.Roles)
}

func TestVerifyExpiredToken(t *testing.T) {
	issued := time.Now().UTC()
	codec := newTestCodec(t, 0).WithClock(func() time.Time { return issued })

	token, _, err := codec.Issue("alice", 1, []string{"USER"}, time.Minute)
	require.NoError(t, err)

	// Move the clock past expiry.
	codec.WithClock(func() time.Time { return issued.Add(2 * time.Minute) })

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyZeroTTL(t *testing.T) {
	codec := newTestCodec(t, 0)

	token, _, err := codec.Issue("alice", 1, nil, 0)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySkewTolerance(t *testing.T) {
	issued := time.Now().UTC()
	codec := newTestCodec(t, 10*time.Second).WithClock(func() time.Time { return issued })

	token, _, err := codec.Issue("alice", 1, nil, time.Minute)
	require.NoError(t, err)

	// Just past expiry but inside the configured epsilon.
	codec.WithClock(func() time.Time { return issued.Add(time.Minute + 5*time.Second) })
	_, err = codec.Verify(token)
	assert.NoError(t, err)

	// Beyond the epsilon.
	codec.WithClock(func() time.Time { return issued.Add(time.Minute + 15*time.Second) })
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec := newTestCodec(t, 0)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := codec.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	codec := newTestCodec(t, 0)
	other, err := NewCodec([]byte("other-secret"), "identity-platform", 0)
	require.NoError(t, err)

	token, _, err := other.Issue("alice", 1, []string{"USER"}, time.Hour)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
