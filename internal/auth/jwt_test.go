package auth_test

import (
	"testing"
	"time"

	"vibealong/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	// Arrange
	tm := auth.NewTokenManager(testSecret, 24*time.Hour)

	// Act
	token, err := tm.GenerateToken("test-user-id", "developer")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ParseToken(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "test-user-id", claims.UserID)
	assert.Equal(t, "developer", claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_InvalidToken(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	_, err := tm.ParseToken("invalid-token")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	other := auth.NewTokenManager("another-secret", time.Hour)
	token, err := other.GenerateToken("test-user-id", "")
	require.NoError(t, err)

	_, err = auth.NewTokenManager(testSecret, time.Hour).ParseToken(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_ExpiredToken(t *testing.T) {
	// Arrange: token expired an hour ago
	claims := jwt.MapClaims{
		"user_id": "test-user-id",
		"exp":     time.Now().Add(-1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, _ := token.SignedString([]byte(testSecret))

	// Act
	_, err := auth.NewTokenManager(testSecret, time.Hour).ParseToken(expiredToken)

	// Assert
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_MissingExpiry(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "test-user-id"})
	signed, _ := token.SignedString([]byte(testSecret))

	_, err := auth.NewTokenManager(testSecret, time.Hour).ParseToken(signed)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_MissingClaims(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenWithoutUserID, _ := token.SignedString([]byte(testSecret))

	_, err := auth.NewTokenManager(testSecret, time.Hour).ParseToken(tokenWithoutUserID)

	assert.ErrorIs(t, err, auth.ErrInvalidClaims)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"user_id": "test-user-id",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := token.SignedString([]byte(testSecret))

	_, err := auth.NewTokenManager(testSecret, time.Hour).ParseToken(signed)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(hash, "correct-horse"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
	assert.False(t, auth.CheckPassword("", "correct-horse"))
}
