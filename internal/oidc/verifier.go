package oidc

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Identity is the subset of identity-token claims the application
// consumes.
type Identity struct {
	Email     string
	GivenName string
}

type idTokenClaims struct {
	Email     string `json:"email"`
	GivenName string `json:"given_name"`
	jwt.RegisteredClaims
}

type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// Verify validates a raw identity token returned by Exchange. It
// fetches the provider's current key set, locates the signing key
// referenced by the token header, then checks the RS256 signature and
// the audience claim against the registered client ID. Failures map to
// ErrUnknownKey or ErrInvalidToken; a key set fetch failure surfaces
// as is so callers treat it as an authentication failure.
func (p *Provider) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	keys, err := p.fetchKeys(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch provider key set")
	}

	var claims idTokenClaims
	_, err = jwt.ParseWithClaims(rawToken, &claims, func(t *jwt.Token) (any, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok {
			return nil, errors.WithStack(ErrUnknownKey)
		}

		key, exists := keys[kid]
		if !exists {
			return nil, errors.WithStack(ErrUnknownKey)
		}

		return key, nil
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(p.config.ClientID),
	)
	if err != nil {
		if errors.Is(err, ErrUnknownKey) {
			return nil, errors.WithStack(ErrUnknownKey)
		}

		return nil, errors.WithStack(ErrInvalidToken)
	}

	if claims.Email == "" {
		return nil, errors.WithStack(ErrInvalidToken)
	}

	return &Identity{
		Email:     claims.Email,
		GivenName: claims.GivenName,
	}, nil
}

func (p *Provider) fetchKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.JWKSURL, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("key set endpoint returned status %d", res.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, errors.WithStack(err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, key := range doc.Keys {
		if key.Kty != "RSA" || key.Kid == "" {
			continue
		}

		publicKey, err := rsaPublicKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "could not decode key %q", key.Kid)
		}

		keys[key.Kid] = publicKey
	}

	return keys, nil
}

func rsaPublicKey(key jwk) (*rsa.PublicKey, error) {
	modulus, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	exponent, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(modulus),
		E: int(new(big.Int).SetBytes(exponent).Int64()),
	}, nil
}
