package authflow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"vibealong/internal/config"
)

// Identity is what the provider tells us about the signed-in account.
type Identity struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// CodeExchanger turns an authorization code into a provider identity.
type CodeExchanger interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Identity, error)
}

// OAuthExchanger exchanges codes against an OAuth2 provider and reads the
// identity from its userinfo endpoint.
type OAuthExchanger struct {
	oauth       *oauth2.Config
	userInfoURL string
}

var _ CodeExchanger = (*OAuthExchanger)(nil)

func NewOAuthExchanger(cfg *config.Config) *OAuthExchanger {
	return &OAuthExchanger{
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			RedirectURL:  cfg.OAuthRedirectURL,
			Scopes:       cfg.OAuthScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.OAuthAuthURL,
				TokenURL: cfg.OAuthTokenURL,
			},
		},
		userInfoURL: cfg.OAuthUserInfoURL,
	}
}

func (e *OAuthExchanger) AuthCodeURL(state string) string {
	return e.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (e *OAuthExchanger) Exchange(ctx context.Context, code string) (Identity, error) {
	token, err := e.oauth.Exchange(ctx, code)
	if err != nil {
		return Identity{}, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.userInfoURL, nil)
	if err != nil {
		return Identity{}, err
	}
	resp, err := e.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("fetch userinfo: status %d", resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return Identity{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if id.Subject == "" || id.Email == "" {
		return Identity{}, fmt.Errorf("userinfo is missing sub or email")
	}
	return id, nil
}
