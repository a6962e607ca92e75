package jwt

import (
	"testing"
	"time"

	"clinic-booking-api/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	service := newTestService()
	userID := uuid.New()

	token, tokenID, err := service.GenerateAccessToken(userID, "ana.lima@example.com", 2)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ana.lima@example.com", claims.Email)
	assert.Equal(t, 2, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestGenerateRefreshToken(t *testing.T) {
	service := newTestService()

	token, _, err := service.GenerateRefreshToken(uuid.New(), "ana.lima@example.com", 2)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service := newTestService()
	token, _, err := service.GenerateAccessToken(uuid.New(), "ana.lima@example.com", 2)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:        "another-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  -time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	token, _, err := service.GenerateAccessToken(uuid.New(), "ana.lima@example.com", 2)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestTokenIDsAreUnique(t *testing.T) {
	service := newTestService()
	userID := uuid.New()

	_, first, err := service.GenerateAccessToken(userID, "ana.lima@example.com", 2)
	require.NoError(t, err)
	_, second, err := service.GenerateAccessToken(userID, "ana.lima@example.com", 2)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
