package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := New("test-secret", 15*time.Minute, 7*24*time.Hour)

	raw, err := svc.GenerateAccessToken(42)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestAccessToken_Expired(t *testing.T) {
	svc := New("test-secret", -time.Minute, 7*24*time.Hour)

	raw, err := svc.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_Tampered(t *testing.T) {
	svc := New("test-secret", 15*time.Minute, 7*24*time.Hour)

	raw, err := svc.GenerateAccessToken(42)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.ValidateAccessToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	issuer := New("secret-one", 15*time.Minute, 7*24*time.Hour)
	verifier := New("secret-two", 15*time.Minute, 7*24*time.Hour)

	raw, err := issuer.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken_Shape(t *testing.T) {
	svc := New("test-secret", 15*time.Minute, 7*24*time.Hour)

	raw, err := svc.GenerateRefreshToken()
	require.NoError(t, err)

	// 64 random bytes, hex-encoded.
	assert.Len(t, raw, 128)

	other, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, other)
}

func TestHashRefreshToken_Deterministic(t *testing.T) {
	svc := New("test-secret", 15*time.Minute, 7*24*time.Hour)

	h1 := svc.HashRefreshToken("some-token")
	h2 := svc.HashRefreshToken("some-token")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, svc.HashRefreshToken("other-token"))
	assert.Len(t, h1, 64)
}
