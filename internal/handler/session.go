package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vibealong/internal/middleware"
)

const (
	oauthStateCookie = "vibealong_oauth_state"
	oauthNextCookie  = "vibealong_oauth_next"
	oauthRoleCookie  = "vibealong_oauth_role"
	oauthCookieTTL   = 10 * time.Minute
)

// Cookies writes the session and OAuth round-trip cookies.
type Cookies struct {
	Secure bool
}

func (k Cookies) set(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", k.Secure, true)
}

func (k Cookies) clear(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", k.Secure, true)
}

func (k Cookies) SetSession(c *gin.Context, token string, ttl time.Duration) {
	k.set(c, middleware.SessionCookie, token, ttl)
}

func (k Cookies) ClearSession(c *gin.Context) {
	k.clear(c, middleware.SessionCookie)
}
