package authn

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/oidc"
	"github.com/tasknest/tasknest/internal/store/repository/user"
	"github.com/tasknest/tasknest/internal/store/storetest"
	"github.com/tasknest/tasknest/internal/token"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	st := storetest.New(t)
	codec := token.NewCodec([]byte("test-secret"))
	provider := oidc.NewProvider(oidc.Config{
		ClientID:    "test-client-id",
		AuthURL:     "https://provider.example.com/auth",
		RedirectURL: "http://localhost:3000/callback",
	})

	service := auth.NewService(user.NewRepository(st), codec, provider)

	return NewHandler(service, Cookie{Name: "token", Path: "/"})
}

func TestProviderRedirect(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/login/google", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", res.Code, http.StatusTemporaryRedirect)
	}

	location := res.Header().Get("Location")
	if !strings.HasPrefix(location, "https://provider.example.com/auth?") {
		t.Errorf("Location = %q, want the provider authorization endpoint", location)
	}

	var state string
	for _, cookie := range res.Result().Cookies() {
		if cookie.Name == stateCookieName {
			state = cookie.Value
		}
	}

	if state == "" {
		t.Fatal("expected a state cookie to be set")
	}
	if !strings.Contains(location, "state="+state) {
		t.Errorf("Location %q should carry the state %q", location, state)
	}
}

func TestProviderCallbackStateMismatch(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/callback?code=test-code&state=spoofed", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "expected"})

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", res.Code, http.StatusTemporaryRedirect)
	}
	if location := res.Header().Get("Location"); location != "/login" {
		t.Errorf("Location = %q, want %q", location, "/login")
	}
}

func TestProviderCallbackMissingCode(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/callback?state=expected", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "expected"})

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", res.Code, http.StatusTemporaryRedirect)
	}
	if location := res.Header().Get("Location"); location != "/login" {
		t.Errorf("Location = %q, want %q", location, "/login")
	}
}
