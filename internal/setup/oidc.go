package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/oidc"
)

var getOIDCProviderFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*oidc.Provider, error) {
	google := conf.HTTP.Authn.Google

	provider := oidc.NewProvider(oidc.Config{
		ClientID:     google.ClientID,
		ClientSecret: google.ClientSecret,
		RedirectURL:  fmt.Sprintf("%s/callback", strings.TrimSuffix(conf.HTTP.BaseURL, "/")),
		Scopes:       google.Scopes,
		AuthURL:      google.AuthURL,
		TokenURL:     google.TokenURL,
		JWKSURL:      google.JWKSURL,
		Timeout:      google.Timeout,
	})

	return provider, nil
})
