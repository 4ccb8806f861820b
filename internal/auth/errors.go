package auth

import "github.com/pkg/errors"

var (
	// ErrEmailTaken is returned on registration when a user with the
	// given email already exists.
	ErrEmailTaken = errors.New("email already taken")

	// ErrBadCredentials is returned on login when the email is unknown
	// or the password does not match.
	ErrBadCredentials = errors.New("bad credentials")
)
