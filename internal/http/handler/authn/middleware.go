package authn

import (
	"log/slog"
	"net/http"

	"github.com/pkg/errors"
	"github.com/tasknest/tasknest/internal/http/context"
	"github.com/tasknest/tasknest/internal/slogx"
	"github.com/tasknest/tasknest/internal/store/repository/user"
	"github.com/tasknest/tasknest/internal/token"
)

// Middleware authenticates each request from its session cookie. A
// verified credential resolves to a stored user attached to the
// request context; anonymous or unverifiable requests are redirected
// to the login page.
func Middleware(codec *token.Codec, users *user.Repository, cookie Cookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			email, err := codec.Verify(cookie.Read(r))
			if err != nil {
				if !errors.Is(err, token.ErrInvalidCredential) {
					slog.ErrorContext(ctx, "could not verify session credential", slogx.Error(errors.WithStack(err)))
				}

				http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
				return
			}

			account, err := users.GetByEmail(ctx, email)
			if err != nil {
				slog.WarnContext(ctx, "could not resolve session user", slog.String("email", email), slogx.Error(errors.WithStack(err)))
				http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
				return
			}

			ctx = context.SetUser(ctx, account)

			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}
