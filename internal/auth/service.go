// Package auth orchestrates the password and OpenID Connect login
// flows and issues session credentials for authenticated users.
package auth

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/tasknest/tasknest/internal/oidc"
	"github.com/tasknest/tasknest/internal/store"
	"github.com/tasknest/tasknest/internal/store/repository/user"
	"github.com/tasknest/tasknest/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users    *user.Repository
	codec    *token.Codec
	provider *oidc.Provider
}

func NewService(users *user.Repository, codec *token.Codec, provider *oidc.Provider) *Service {
	return &Service{
		users:    users,
		codec:    codec,
		provider: provider,
	}
}

// Register creates a new user with a hashed password and issues a
// session credential. Fails with ErrEmailTaken when the email already
// exists; the unique index on email guarantees at most one of two
// concurrent registrations succeeds.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", errors.WithStack(ErrEmailTaken)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", errors.WithStack(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.WithStack(err)
	}

	hashed := string(hash)

	if err := s.users.Create(ctx, store.NewUser(name, email, &hashed)); err != nil {
		if store.IsUniqueConstraintError(err) {
			return "", errors.WithStack(ErrEmailTaken)
		}

		return "", errors.WithStack(err)
	}

	credential, err := s.codec.Issue(email)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return credential, nil
}

// Login validates the email/password pair against the store and
// issues a session credential. Unknown emails, wrong passwords and
// password-less accounts created through an identity provider all
// fail with ErrBadCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.WithStack(ErrBadCredentials)
		}

		return "", errors.WithStack(err)
	}

	if account.Password == nil {
		return "", errors.WithStack(ErrBadCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*account.Password), []byte(password)); err != nil {
		return "", errors.WithStack(ErrBadCredentials)
	}

	credential, err := s.codec.Issue(email)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return credential, nil
}

// LoginURL returns the identity provider's authorization URL for the
// given state parameter.
func (s *Service) LoginURL(state string) string {
	return s.provider.AuthURL(state)
}

// HandleCallback completes the provider login: it exchanges the
// authorization code for an identity token, verifies it against the
// provider's key set, links or creates the matching user and issues a
// session credential. Any exchange or verification failure aborts the
// login before a user row is written.
func (s *Service) HandleCallback(ctx context.Context, code string) (string, error) {
	rawToken, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return "", errors.Wrap(err, "could not exchange authorization code")
	}

	identity, err := s.provider.Verify(ctx, rawToken)
	if err != nil {
		return "", errors.Wrap(err, "could not verify identity token")
	}

	_, err = s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.WithStack(err)
		}

		if err := s.users.Create(ctx, store.NewUser(identity.GivenName, identity.Email, nil)); err != nil {
			// A concurrent callback for the same email may have won
			// the insert; the account exists either way.
			if !store.IsUniqueConstraintError(err) {
				return "", errors.WithStack(err)
			}
		} else {
			slog.InfoContext(ctx, "created user from identity provider", slog.String("email", identity.Email))
		}
	}

	credential, err := s.codec.Issue(identity.Email)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return credential, nil
}
