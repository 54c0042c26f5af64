package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vibealong/internal/auth"
	"vibealong/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const jwtSecret = "test-secret-key"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tokens := auth.NewTokenManager(jwtSecret, time.Hour)

	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(tokens))
	protected.GET("/resource", func(c *gin.Context) {
		userID, exists := middleware.CurrentUser(c)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User ID not found in context"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Access granted",
			"user_id": userID,
			"role":    c.GetString(middleware.RoleKey),
		})
	})

	r.GET("/public", middleware.OptionalAuth(tokens), func(c *gin.Context) {
		userID, ok := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"signed_in": ok, "user_id": userID})
	})

	return r
}

func generateTestToken(userID uuid.UUID) string {
	token, _ := auth.NewTokenManager(jwtSecret, time.Hour).GenerateToken(userID.String(), "vibe_coder")
	return token
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	// Arrange
	router := setupRouter()
	userID := uuid.New()
	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(userID))

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), userID.String())
	assert.Contains(t, resp.Body.String(), "vibe_coder")
}

func TestJWTAuthMiddleware_SessionCookie(t *testing.T) {
	router := setupRouter()
	userID := uuid.New()
	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: generateTestToken(userID)})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), userID.String())
}

func TestJWTAuthMiddleware_NoAuthHeader(t *testing.T) {
	router := setupRouter()
	req, _ := http.NewRequest("GET", "/protected/resource", nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header is required")
}

func TestJWTAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	router := setupRouter()
	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "InvalidFormat token123")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header format must be Bearer {token}")
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupRouter()
	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}

func TestJWTAuthMiddleware_TokenWithInvalidUserID(t *testing.T) {
	// Arrange: token whose user id is not a uuid
	claims := jwt.MapClaims{
		"user_id": "not-a-valid-uuid",
		"exp":     jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(jwtSecret))

	router := setupRouter()
	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid user ID in token")
}

func TestOptionalAuth(t *testing.T) {
	router := setupRouter()

	resp := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/public", nil)
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"signed_in":false`)

	userID := uuid.New()
	resp = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/public", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(userID))
	router.ServeHTTP(resp, req)
	assert.Contains(t, resp.Body.String(), `"signed_in":true`)
	assert.Contains(t, resp.Body.String(), userID.String())
}
