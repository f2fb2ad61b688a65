package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() JWTService {
	return NewJWTService(Config{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateRefreshToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService(Config{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		Expiry:        -time.Minute,
		RefreshExpiry: time.Hour,
	})

	token, err := svc.GenerateAccessToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := newTestService()
	_, err := svc.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
