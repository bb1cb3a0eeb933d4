package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "64a1f0b2c3d4e5f601234567", "CUSTOMER", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	claims, err := ParseAccessToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "64a1f0b2c3d4e5f601234567", claims.UserID)
	assert.Equal(t, "CUSTOMER", claims.Role)
	assert.WithinDuration(t, tok.Exp, claims.ExpiresAt, time.Second)
}

func TestParseAccessTokenExpired(t *testing.T) {
	// TTL of -1 minute yields a token already past its exp claim.
	tok, err := NewAccessToken(testSecret, "64a1f0b2c3d4e5f601234567", "ADMIN", -1)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, tok.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "64a1f0b2c3d4e5f601234567", "ADMIN", 60)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := ParseAccessToken(testSecret, raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, "input %q", raw)
	}
}

func TestNewRefreshToken(t *testing.T) {
	a, err := NewRefreshToken(30)
	require.NoError(t, err)
	b, err := NewRefreshToken(30)
	require.NoError(t, err)

	assert.Len(t, a.Raw, 96)
	assert.NotEqual(t, a.Raw, b.Raw)
	assert.True(t, a.Exp.After(time.Now().UTC().Add(29*24*time.Hour)))
}

func TestHashToken(t *testing.T) {
	h := HashToken("some-token")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken("some-token"))
	assert.NotEqual(t, h, HashToken("some-token2"))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
