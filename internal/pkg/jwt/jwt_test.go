package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("secret", "forever")
	assert.Error(t, err)
}

func TestGenerateAccessToken(t *testing.T) {
	svc, err := NewJWTService("test-secret-key-for-jwt", "1h")
	require.NoError(t, err)

	before := time.Now()
	token, expiresAt, err := svc.GenerateAccessToken("user-1", "admin@garage.test", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.InDelta(t, before.Add(time.Hour).Unix(), expiresAt, 2)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "admin@garage.test", claims["email"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestDecode_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService("secret-a", "1h")
	require.NoError(t, err)
	verifier, err := NewJWTService("secret-b", "1h")
	require.NoError(t, err)

	token, _, err := issuer.GenerateAccessToken("user-1", "a@garage.test", "admin")
	require.NoError(t, err)

	_, err = verifier.JWTAuth().Decode(token)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc, err := NewJWTService("secret", "1h")
	require.NoError(t, err)

	token, exp, err := svc.GenerateAccessToken("user-1", "a@garage.test", "admin")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token, exp)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestRevokeToken_PrunesExpired(t *testing.T) {
	svc, err := NewJWTService("secret", "1h")
	require.NoError(t, err)

	svc.RevokeToken("stale", time.Now().Add(-time.Hour).Unix())
	svc.RevokeToken("fresh", time.Now().Add(time.Hour).Unix())

	assert.False(t, svc.IsTokenRevoked("stale"))
	assert.True(t, svc.IsTokenRevoked("fresh"))
}
