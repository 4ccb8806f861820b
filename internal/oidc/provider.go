// Package oidc implements the "Sign in with Google" login flow: the
// authorization redirect, the code-for-token exchange and the
// verification of the returned identity token against the provider's
// published key set.
package oidc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURL = "https://oauth2.googleapis.com/token"
	defaultJWKSURL  = "https://www.googleapis.com/oauth2/v3/certs"
)

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string

	// Endpoint URLs, overridable for tests.
	AuthURL  string
	TokenURL string
	JWKSURL  string

	Timeout time.Duration
}

type Provider struct {
	config Config
	client *http.Client
}

func NewProvider(config Config) *Provider {
	if config.AuthURL == "" {
		config.AuthURL = defaultAuthURL
	}
	if config.TokenURL == "" {
		config.TokenURL = defaultTokenURL
	}
	if config.JWKSURL == "" {
		config.JWKSURL = defaultJWKSURL
	}
	if len(config.Scopes) == 0 {
		config.Scopes = []string{"openid", "profile", "email"}
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	return &Provider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// AuthURL returns the provider's authorization endpoint URL the
// client's browser should be redirected to.
func (p *Provider) AuthURL(state string) string {
	params := url.Values{
		"client_id":     {p.config.ClientID},
		"redirect_uri":  {p.config.RedirectURL},
		"response_type": {"code"},
		"scope":         {strings.Join(p.config.Scopes, " ")},
		"state":         {state},
	}

	return p.config.AuthURL + "?" + params.Encode()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Exchange trades an authorization code for the provider's identity
// token. The returned token is unverified raw material for Verify.
func (p *Provider) Exchange(ctx context.Context, code string) (string, error) {
	data := url.Values{
		"code":          {code},
		"client_id":     {p.config.ClientID},
		"client_secret": {p.config.ClientSecret},
		"redirect_uri":  {p.config.RedirectURL},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", errors.WithStack(err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := p.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "could not reach token endpoint")
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("token exchange failed with status %d: %s", res.StatusCode, body)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", errors.WithStack(err)
	}

	if token.IDToken == "" {
		return "", errors.New("no identity token in response")
	}

	return token.IDToken, nil
}
