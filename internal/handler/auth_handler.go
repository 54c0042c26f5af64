package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vibealong/internal/auth"
	"vibealong/internal/authflow"
)

type CallbackFlow interface {
	AuthCodeURL(state string) string
	Callback(ctx context.Context, in authflow.CallbackInput) (authflow.Outcome, error)
}

// AuthHandler runs the OAuth redirect round trip. flow is nil when no
// provider is configured.
type AuthHandler struct {
	flow    CallbackFlow
	tokens  *auth.TokenManager
	cookies Cookies
	log     *zap.Logger
}

func NewAuthHandler(flow CallbackFlow, tokens *auth.TokenManager, cookies Cookies, log *zap.Logger) *AuthHandler {
	return &AuthHandler{flow: flow, tokens: tokens, cookies: cookies, log: log}
}

// Login godoc
// @Summary  Start the OAuth sign-in
// @Tags     Auth
// @Param    next  query  string  false  "Relative path to land on"
// @Param    role  query  string  false  "Role for first sign-ins"
// @Success  302
// @Router   /auth/login [get]
func (h *AuthHandler) Login(c *gin.Context) {
	if h.flow == nil {
		c.Redirect(http.StatusFound, authflow.LoginPath+"?error=oauth_disabled")
		return
	}

	state := uuid.NewString()
	h.cookies.set(c, oauthStateCookie, state, oauthCookieTTL)
	if next := c.Query("next"); authflow.SafeNext(next) {
		h.cookies.set(c, oauthNextCookie, next, oauthCookieTTL)
	}
	if role := c.Query("role"); role != "" {
		h.cookies.set(c, oauthRoleCookie, role, oauthCookieTTL)
	}
	c.Redirect(http.StatusFound, h.flow.AuthCodeURL(state))
}

// Callback godoc
// @Summary  OAuth callback
// @Tags     Auth
// @Param    code   query  string  false  "Authorization code"
// @Param    state  query  string  false  "State from /auth/login"
// @Param    next   query  string  false  "Relative path to land on"
// @Success  302
// @Router   /auth/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code != "" && h.flow == nil {
		c.Redirect(http.StatusFound, authflow.LoginPath+"?error=oauth_disabled")
		return
	}
	if code == "" {
		c.Redirect(http.StatusFound, authflow.LoginPath)
		return
	}

	expected, _ := c.Cookie(oauthStateCookie)
	state := c.Query("state")
	if expected == "" || state != expected {
		h.cookies.clear(c, oauthStateCookie)
		h.log.Warn("oauth callback without matching state", zap.Bool("cookie_present", expected != ""))
		c.Redirect(http.StatusFound, authflow.LoginPath+"?error=invalid_state")
		return
	}
	next := c.Query("next")
	if next == "" {
		next, _ = c.Cookie(oauthNextCookie)
	}
	role := c.Query("role")
	if role == "" {
		role, _ = c.Cookie(oauthRoleCookie)
	}
	for _, name := range []string{oauthStateCookie, oauthNextCookie, oauthRoleCookie} {
		h.cookies.clear(c, name)
	}

	out, err := h.flow.Callback(c.Request.Context(), authflow.CallbackInput{
		Code:          code,
		State:         state,
		ExpectedState: expected,
		Next:          next,
		Role:          role,
	})
	if err != nil {
		h.log.Warn("oauth callback failed", zap.Error(err), zap.String("state", string(out.State)))
	}

	if out.User != nil {
		profileRole := ""
		if out.Profile != nil {
			profileRole = out.Profile.Role
		}
		token, err := h.tokens.GenerateToken(out.User.ID.String(), profileRole)
		if err != nil {
			h.log.Error("issue session failed", zap.Error(err))
			c.Redirect(http.StatusFound, authflow.LoginPath+"?error=session_failed")
			return
		}
		h.cookies.SetSession(c, token, h.tokens.Expiry())
	}

	c.Redirect(http.StatusFound, out.Redirect)
}
