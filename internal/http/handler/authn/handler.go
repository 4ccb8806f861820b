package authn

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/slogx"
)

const stateCookieName = "oauth_state"

// Handler serves the identity provider login flow: the authorization
// redirect and the provider's callback.
type Handler struct {
	mux    *http.ServeMux
	auth   *auth.Service
	cookie Cookie
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(authService *auth.Service, cookie Cookie) *Handler {
	h := &Handler{
		mux:    http.NewServeMux(),
		auth:   authService,
		cookie: cookie,
	}

	h.mux.HandleFunc("GET /login/google", h.handleProviderRedirect)
	h.mux.HandleFunc("GET /callback", h.handleProviderCallback)

	return h
}

func (h *Handler) handleProviderRedirect(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600,
	})

	http.Redirect(w, r, h.auth.LoginURL(state), http.StatusTemporaryRedirect)
}

func (h *Handler) handleProviderCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		slog.WarnContext(ctx, "provider callback with missing or mismatched state")
		http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   stateCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.WarnContext(ctx, "provider callback without authorization code")
		http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
		return
	}

	credential, err := h.auth.HandleCallback(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "could not complete provider login", slogx.Error(errors.WithStack(err)))
		http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
		return
	}

	h.cookie.Write(w, credential)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

var _ http.Handler = &Handler{}
