package oidc

import "github.com/pkg/errors"

var (
	// ErrUnknownKey is returned when the identity token references a
	// signing key absent from the provider's published key set.
	ErrUnknownKey = errors.New("unknown signing key")

	// ErrInvalidToken is returned when the identity token fails
	// signature or claims validation.
	ErrInvalidToken = errors.New("invalid identity token")
)
