// Package token implements the signed session credential attached to
// authenticated clients as the "token" cookie.
package token

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var ErrInvalidCredential = errors.New("invalid session credential")

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Codec issues and verifies session credentials signed with a
// server-held secret. Credentials carry a single claim, the
// authenticated user's email, and no expiry (see DESIGN.md).
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Issue produces a credential for the given email.
func (c *Codec) Issue(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
	})

	credential, err := token.SignedString(c.secret)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return credential, nil
}

// Verify checks the credential's signature and returns its email claim.
// Malformed, forged or empty credentials fail with ErrInvalidCredential.
func (c *Codec) Verify(credential string) (string, error) {
	if credential == "" {
		return "", errors.WithStack(ErrInvalidCredential)
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(credential, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", errors.WithStack(ErrInvalidCredential)
	}

	if claims.Email == "" {
		return "", errors.WithStack(ErrInvalidCredential)
	}

	return claims.Email, nil
}
