package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vibealong/internal/auth"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"

	// SessionCookie holds the JWT issued by login and the OAuth callback.
	SessionCookie = "vibealong_session"
)

// JWTAuthMiddleware requires a valid session token, sent either as a Bearer
// header or in the session cookie.
func JWTAuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, msg := extractToken(c)
		if msg != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// OptionalAuth sets the user when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, msg := extractToken(c); msg == "" {
			if claims, err := tokens.ParseToken(tokenStr); err == nil {
				if userID, err := uuid.Parse(claims.UserID); err == nil {
					c.Set(UserIDKey, userID)
					c.Set(RoleKey, claims.Role)
				}
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user id, if any.
func CurrentUser(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func extractToken(c *gin.Context) (string, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
			return cookie, ""
		}
		return "", "Authorization header is required"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", "Authorization header format must be Bearer {token}"
	}
	return strings.TrimSpace(parts[1]), ""
}
