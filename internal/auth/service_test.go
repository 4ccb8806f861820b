package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/tasknest/tasknest/internal/oidc"
	"github.com/tasknest/tasknest/internal/store"
	"github.com/tasknest/tasknest/internal/store/repository/user"
	"github.com/tasknest/tasknest/internal/store/storetest"
	"github.com/tasknest/tasknest/internal/token"
)

func newTestService(t *testing.T, provider *oidc.Provider) (*Service, *user.Repository, *token.Codec) {
	t.Helper()

	st := storetest.New(t)
	users := user.NewRepository(st)
	codec := token.NewCodec([]byte("test-secret"))

	if provider == nil {
		provider = oidc.NewProvider(oidc.Config{ClientID: "test-client-id"})
	}

	return NewService(users, codec, provider), users, codec
}

func TestRegister(t *testing.T) {
	service, users, codec := newTestService(t, nil)
	ctx := context.Background()

	credential, err := service.Register(ctx, "Alice", "alice@example.com", "pw1")
	if err != nil {
		t.Fatalf("Register() error = %+v", err)
	}

	email, err := codec.Verify(credential)
	if err != nil {
		t.Fatalf("Verify() error = %+v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("Verify() = %q, want %q", email, "alice@example.com")
	}

	account, err := users.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %+v", err)
	}

	if account.Password == nil {
		t.Fatal("expected a stored password hash")
	}
	if *account.Password == "pw1" {
		t.Error("password must not be stored in plaintext")
	}
}

func TestRegisterConflict(t *testing.T) {
	service, users, _ := newTestService(t, nil)
	ctx := context.Background()

	if _, err := service.Register(ctx, "Alice", "alice@example.com", "pw1"); err != nil {
		t.Fatalf("Register() error = %+v", err)
	}

	if _, err := service.Register(ctx, "Impostor", "alice@example.com", "pw2"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("Register() error = %v, want ErrEmailTaken", err)
	}

	// The original row must be untouched.
	account, err := users.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %+v", err)
	}
	if account.Name != "Alice" {
		t.Errorf("Name = %q, want %q", account.Name, "Alice")
	}

	count, err := users.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %+v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestLogin(t *testing.T) {
	service, _, codec := newTestService(t, nil)
	ctx := context.Background()

	if _, err := service.Register(ctx, "Alice", "alice@example.com", "pw1"); err != nil {
		t.Fatalf("Register() error = %+v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"correct password", "alice@example.com", "pw1", nil},
		{"wrong password", "alice@example.com", "wrong", ErrBadCredentials},
		{"unknown email", "nobody@example.com", "pw1", ErrBadCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			credential, err := service.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Login() error = %+v", err)
			}

			email, err := codec.Verify(credential)
			if err != nil {
				t.Fatalf("Verify() error = %+v", err)
			}
			if email != tt.email {
				t.Errorf("Verify() = %q, want %q", email, tt.email)
			}
		})
	}
}

func TestLoginProviderOnlyAccount(t *testing.T) {
	service, users, _ := newTestService(t, nil)
	ctx := context.Background()

	if err := users.Create(ctx, store.NewUser("Alice", "alice@example.com", nil)); err != nil {
		t.Fatalf("Create() error = %+v", err)
	}

	if _, err := service.Login(ctx, "alice@example.com", ""); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("Login() error = %v, want ErrBadCredentials", err)
	}
}

// Provider login flow, backed by fake token and key set endpoints.
// The key set always advertises "key-1"; signedKid controls which key
// identifier the handed-out identity token references.

func newProviderFixture(t *testing.T, clientID, signedKid string) *oidc.Provider {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("could not generate RSA key: %+v", err)
	}

	jwks := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kid": "key-1",
				"kty": "RSA",
				"alg": "RS256",
				"use": "sig",
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			}},
		})
	}))
	t.Cleanup(jwks.Close)

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"aud":        clientID,
		"email":      "alice@example.com",
		"given_name": "Alice",
	})
	tok.Header["kid"] = signedKid

	idToken, err := tok.SignedString(key)
	if err != nil {
		t.Fatalf("could not sign identity token: %+v", err)
	}

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-access-token",
			"id_token":     idToken,
		})
	}))
	t.Cleanup(tokenServer.Close)

	return oidc.NewProvider(oidc.Config{
		ClientID: clientID,
		TokenURL: tokenServer.URL,
		JWKSURL:  jwks.URL,
	})
}

func TestHandleCallback(t *testing.T) {
	provider := newProviderFixture(t, "test-client-id", "key-1")
	service, users, codec := newTestService(t, provider)
	ctx := context.Background()

	credential, err := service.HandleCallback(ctx, "test-code")
	if err != nil {
		t.Fatalf("HandleCallback() error = %+v", err)
	}

	email, err := codec.Verify(credential)
	if err != nil {
		t.Fatalf("Verify() error = %+v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("Verify() = %q, want %q", email, "alice@example.com")
	}

	account, err := users.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %+v", err)
	}
	if account.Name != "Alice" {
		t.Errorf("Name = %q, want %q", account.Name, "Alice")
	}
	if account.Password != nil {
		t.Error("provider accounts must not have a password")
	}

	// A repeat callback for the same email links the existing account
	// instead of creating another one.
	if _, err := service.HandleCallback(ctx, "test-code"); err != nil {
		t.Fatalf("HandleCallback() error = %+v", err)
	}

	count, err := users.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %+v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestHandleCallbackUnknownKey(t *testing.T) {
	provider := newProviderFixture(t, "test-client-id", "rotated-away")

	service, users, _ := newTestService(t, provider)
	ctx := context.Background()

	_, err := service.HandleCallback(ctx, "test-code")
	if !errors.Is(err, oidc.ErrUnknownKey) {
		t.Fatalf("HandleCallback() error = %v, want ErrUnknownKey", err)
	}

	count, err := users.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %+v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0: no user row on verification failure", count)
	}
}
